package credentials

import (
	"fmt"
	"io"
	"strings"
)

// WriteSetupGuide explains how to obtain and store a provider key
func WriteSetupGuide(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintln(w, "PROVIDER API KEY SETUP")
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "igdash reads Instagram data through a RapidAPI scraping provider.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "1. Sign in at https://rapidapi.com and subscribe to the")
	fmt.Fprintln(w, "   Instagram Scraper Stable API.")
	fmt.Fprintln(w, "2. Copy the X-RapidAPI-Key shown in the endpoint playground.")
	fmt.Fprintln(w, "3. Store it in your system keychain:")
	fmt.Fprintln(w, "     igdash key set")
	fmt.Fprintln(w, "   or export it for the server process:")
	fmt.Fprintln(w, "     export RAPIDAPI_KEY=<your key>")
	fmt.Fprintln(w, "     export RAPIDAPI_HOST=instagram-scraper-stable-api.p.rapidapi.com")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check where a key was found with: igdash key status")
}
