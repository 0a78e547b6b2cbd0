package chart

// Category10 is the ten-color categorical palette used for bars and series
var Category10 = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

const (
	ColorOrange = "#ffa500"
	ColorWhite  = "#ffffff"
	ColorAxis   = "#000000"
	ColorGrid   = "#d9d9d9"
)

// ColorAt returns the palette color for index i, cycling
func ColorAt(i int) string {
	return Category10[i%len(Category10)]
}
