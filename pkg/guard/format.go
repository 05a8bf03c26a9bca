package guard

import (
	"fmt"
	"strings"
)

// FormatWarning renders a denied Result as a markdown message suitable for
// returning to the model as a terminal tool result (and for showing to the
// user). The guard itself never prints; display is the caller's job.
func FormatWarning(res Result) string {
	var b strings.Builder

	b.WriteString("## Response Too Large\n\n")
	fmt.Fprintf(&b, "%s\n\n", res.Rationale)
	fmt.Fprintf(&b, "Requested data (%d time × %d lat × %d lon = %d points) is too large to return in chat.\n\n",
		res.Shape.TimePoints, res.Shape.LatPoints, res.Shape.LonPoints, res.Shape.Elements())

	b.WriteString("### Suggested Alternatives\n\n")
	for i, alt := range res.Alternatives {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, alt.Approach)
		fmt.Fprintf(&b, "   - %s\n", alt.Description)
		if alt.Example != "" {
			fmt.Fprintf(&b, "   - Example: *%s*\n", alt.Example)
		}
		if alt.EstimatedTokens > 0 {
			fmt.Fprintf(&b, "   - Estimated size: ~%d tokens\n", alt.EstimatedTokens)
		}
		if alt.CodeExample != "" {
			fmt.Fprintf(&b, "\n```python\n%s```\n", alt.CodeExample)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Tips\n")
	b.WriteString("- Start with smaller regions and time periods\n")
	b.WriteString("- Use spatial or temporal averages when possible\n")
	b.WriteString("- For very large analyses, access the data directly with Python\n")

	return b.String()
}
