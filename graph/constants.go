package graph

const (
	// RelationParentOf is the only link type in a dataset tree
	RelationParentOf = "parent_of"

	defaultLinkWeight = 1.0
)

// levelColors is cycled by level depth.
var levelColors = []string{
	"#e74c3c",
	"#3498db",
	"#2ecc71",
	"#f39c12",
	"#9b59b6",
	"#1abc9c",
	"#e67e22",
	"#34495e",
}

func colorForDepth(depth int) string {
	return levelColors[depth%len(levelColors)]
}
