package history

import "slices"

// palette holds the Graphviz color names cycled through for branch lanes.
// The leading entries are high-contrast; the tail keeps very large
// repositories from repeating colors too early.
var palette = []string{
	"skyblue",
	"yellow",
	"yellowgreen",
	"gold",
	"goldenrod",
	"violet",
	"tomato",
	"springgreen",
	"steelblue",
	"tan",
	"thistle",
	"turquoise",
	"peru",
	"pink",
	"plum",
	"powderblue",
	"purple",

	"antiquewhite",
	"aquamarine",
	"beige",
	"bisque",
	"blanchedalmond",
	"burlywood",
	"cadetblue",
	"chartreuse",
	"cornflowerblue",
	"cornsilk",
	"cyan",
	"darkgoldenrod",
	"darkkhaki",
	"darkolivegreen",
	"darkorange",
	"darksalmon",
	"darkseagreen",
	"darkturquoise",
	"deeppink",
	"deepskyblue",
	"dodgerblue",
	"firebrick",
	"forestgreen",
	"gainsboro",
	"greenyellow",
	"honeydew",
	"hotpink",
	"indianred",
	"khaki",
	"lavender",
	"lawngreen",
	"lemonchiffon",
	"lightblue",
	"lightcoral",
	"lightcyan",
	"lightgoldenrodyellow",
	"lightgreen",
	"lightpink",
	"lightsalmon",
	"lightseagreen",
	"lightskyblue",
	"lightsteelblue",
	"lightyellow",
	"limegreen",
	"linen",
	"magenta",
	"mediumaquamarine",
	"mediumorchid",
	"mediumpurple",
	"mediumseagreen",
	"mediumslateblue",
	"mediumspringgreen",
	"mediumturquoise",
	"mediumvioletred",
	"mintcream",
	"mistyrose",
	"moccasin",
	"navajowhite",
	"oldlace",
	"olivedrab",
	"orange",
	"orangered",
	"orchid",
	"palegoldenrod",
	"palegreen",
	"paleturquoise",
	"palevioletred",
	"papayawhip",
	"peachpuff",
	"rosybrown",
	"royalblue",
	"salmon",
	"sandybrown",
	"seagreen",
	"seashell",
	"sienna",
	"slateblue",
	"slategray",
}

// Lanes is a deterministic branch-to-lane assignment used purely for
// rendering consistency. Equal ref sets and ordering always produce the
// same lanes, so re-rendering an unchanged repository is visually stable.
type Lanes struct {
	order []string
	index map[string]int
}

// AssignLanes numbers every branch that owns at least one commit.
// Lane order follows CompareBranches, so the trunk always gets lane zero.
func AssignLanes(g *Graph, trunks []string) Lanes {
	if len(trunks) == 0 {
		trunks = DefaultTrunks
	}

	var names []string
	seen := make(map[string]bool)
	for _, c := range g.Commits() {
		if c.Branch != "" && !seen[c.Branch] {
			seen[c.Branch] = true
			names = append(names, c.Branch)
		}
	}
	slices.SortFunc(names, func(a, b string) int { return CompareBranches(trunks, a, b) })

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return Lanes{order: names, index: index}
}

// Branches returns the branch names in lane order.
func (l Lanes) Branches() []string { return slices.Clone(l.order) }

// Index returns the lane number for a branch.
func (l Lanes) Index(branch string) (int, bool) {
	i, ok := l.index[branch]
	return i, ok
}

// Color returns the Graphviz color for a branch, cycling through the
// palette. Unknown branches get the first color.
func (l Lanes) Color(branch string) string {
	i, ok := l.index[branch]
	if !ok {
		i = 0
	}
	return palette[i%len(palette)]
}
