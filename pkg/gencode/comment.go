package gencode

// Comment is the comment syntax used for sentinel lines.
type Comment struct {
	Prefix string
	Suffix string
}

// Common comment syntaxes.
//
//nolint:gochecknoglobals // Read-only values.
var (
	CommentSlash = Comment{Prefix: "//"}
	CommentHash  = Comment{Prefix: "#"}
	CommentXML   = Comment{Prefix: "<!--", Suffix: " -->"}
)

// CommentFor returns the comment syntax for a file language.
func CommentFor(language string) Comment {
	switch language {
	case "ruby", "rb", "properties", "podfile":
		return CommentHash
	case "xml", "plist":
		return CommentXML
	default:
		return CommentSlash
	}
}

func (c Comment) line(body string) string {
	if c.Prefix == "" {
		c = CommentSlash
	}
	return c.Prefix + " " + body + c.Suffix
}
