package docextract

import (
	"fmt"
	"sort"
	"strings"
)

// promptSpec describes how one document type is turned into an extraction
// prompt. The schema fragment names only the profile sections this document
// can plausibly populate.
type promptSpec struct {
	description string
	schema      string
}

var promptSpecs = map[string]promptSpec{
	"bank_statement": {
		description: "a personal or business bank statement",
		schema: `{
  "financialInfo": {"monthlyIncome": <number, average monthly deposits in USD>},
  "alternativeIncome": {
    "business": {
      "hasRevenue": <boolean>,
      "monthlyRevenue": <number, average monthly business deposits in USD>,
      "cashFlowConsistency": <"high"|"medium"|"low">
    },
    "otherIncome": [{"source": <string>, "monthlyAmount": <number>}]
  }
}`,
	},
	"pay_stub": {
		description: "a pay stub from an employer",
		schema: `{
  "financialInfo": {"monthlyIncome": <number, gross monthly pay in USD>},
  "personalInfo": {"fullName": <string>}
}`,
	},
	"utility_bill": {
		description: "a utility bill with payment history",
		schema: `{
  "paymentReliability": {"utilityOnTimePercent": <number between 0 and 100, percent of bills paid on time>},
  "personalInfo": {"fullName": <string>, "zipCode": <string>}
}`,
	},
	"rent_ledger": {
		description: "a rent payment ledger from a landlord or property manager",
		schema: `{
  "paymentReliability": {"rentOnTimePercent": <number between 0 and 100, percent of rent paid on time>},
  "personalInfo": {"fullName": <string>}
}`,
	},
	"gig_summary": {
		description: "an earnings summary from a gig work platform",
		schema: `{
  "alternativeIncome": {
    "gigWork": {
      "platforms": [<string platform names>],
      "monthlyIncome": <number, average monthly gig earnings in USD>,
      "averageRating": <number between 1 and 5>
    }
  }
}`,
	},
}

// SupportedDocumentTypes lists the document types the extraction pipeline
// accepts, sorted for stable error messages.
func SupportedDocumentTypes() []string {
	names := make([]string, 0, len(promptSpecs))
	for name := range promptSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupportedDocumentType reports whether the extraction pipeline has a
// prompt for the given document type.
func IsSupportedDocumentType(documentType string) bool {
	_, ok := promptSpecs[strings.ToLower(strings.TrimSpace(documentType))]
	return ok
}

// BuildPrompt produces the extraction prompt for the given document type.
func BuildPrompt(documentType, text string) (string, error) {
	spec, ok := promptSpecs[strings.ToLower(strings.TrimSpace(documentType))]
	if !ok {
		return "", fmt.Errorf("unsupported document type %q (supported: %s)",
			documentType, strings.Join(SupportedDocumentTypes(), ", "))
	}

	var b strings.Builder
	b.WriteString("You are a financial document analyst. The text below is from ")
	b.WriteString(spec.description)
	b.WriteString(".\n\n")
	b.WriteString("Extract the fields described by this JSON schema. Respond with a single JSON object and nothing else. ")
	b.WriteString("Omit any field the document does not support. Never invent values.\n\n")
	b.WriteString("Schema:\n")
	b.WriteString(spec.schema)
	b.WriteString("\n\nDocument text:\n\"\"\"\n")
	b.WriteString(text)
	b.WriteString("\n\"\"\"\n")

	return b.String(), nil
}
