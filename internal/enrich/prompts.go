package enrich

import "fmt"

const systemInstruction = "You are an expert at extracting structured financial and legislative data."

// buildDetailsPrompt renders the fixed instruction template for one
// reappropriation chunk. The model must answer with a bare JSON object
// carrying exactly the four named fields.
func buildDetailsPrompt(text string) string {
	return fmt.Sprintf(`Extract the following details from this reappropriation text:

1. "Reappropriation Amount" - The amount listed as a reappropriation (e.g., $5,000,000).
2. "Appropriation Amount" - The original appropriation amount (if available).
3. "Year of Appropriation" - The year when the original appropriation was made.
4. "Appropriation ID" - If the text includes a unique ID associated with the appropriation.

Example text:

"
By chapter 53, section 1, of the laws of 1998
....
....
26 (302198C1) (15503) ... 1,000,000 .................... (re. $796,000)
"

Expected output (valid JSON, no code fences, no extra text):
{
    "Reappropriation Amount": "$796,000",
    "Appropriation Amount": "$1,000,000",
    "Year of Appropriation": "1998",
    "Appropriation ID": "15503"
}

If any field is missing, return "N/A" for it.

Text to analyze:
%s`, text)
}
