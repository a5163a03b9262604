package guardrails

// Disclaimer is attached to every non-empty recommendation response.
const Disclaimer = "This content is for educational purposes only and does not constitute " +
	"financial advice. Please consult with a qualified financial professional " +
	"before making financial decisions."
