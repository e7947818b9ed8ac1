package doctree

import "strings"

// DocTree is the root of a parsed reference document (instructions,
// previous reports, guidelines) uploaded as drafting context.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the parsed document.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content (may be empty for container nodes)
	Page     int        // Source page/line (0 if N/A)
	Children []*DocNode // Subsections
}

// Chunk is a sized text segment with structural context, ready for
// anonymization and indexing.
type Chunk struct {
	Text       string   // Chunk text content
	Index      int      // Sequence number within document
	Breadcrumb []string // Heading hierarchy, e.g. ["Guidelines", "Formatting"]
	PageStart  int
	PageEnd    int
}

// FlattenText joins all node text depth-first, used for whole-document
// operations (compliance prompts, gap analysis).
func FlattenText(tree *DocTree) string {
	var sb strings.Builder
	var walk func(nodes []*DocNode)
	walk = func(nodes []*DocNode) {
		for _, n := range nodes {
			if n.Text != "" {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
				sb.WriteString(n.Text)
			}
			walk(n.Children)
		}
	}
	walk(tree.Children)
	return sb.String()
}
