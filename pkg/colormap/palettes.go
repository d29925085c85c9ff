package colormap

import "sort"

// PaletteKind tells how a palette is meant to be used.
type PaletteKind string

const (
	// Qualitative palettes assign distinct colors to categories, cycling in order.
	Qualitative PaletteKind = "qualitative"
	// Sequential palettes are anchors of a continuous gradient.
	Sequential PaletteKind = "sequential"
)

// PaletteInfo describes a named palette. Colors is always a fresh copy.
type PaletteInfo struct {
	Name   string      `json:"name"`
	Kind   PaletteKind `json:"kind"`
	Colors []string    `json:"colors"`
}

type paletteEntry struct {
	kind   PaletteKind
	colors []string
}

var palettes = map[string]paletteEntry{
	"godsnot_102":            {Qualitative, godsnot102},
	"iwanthue_alphabet_hard": {Qualitative, iwanthueAlphabetHard},
	"iwanthue_answer_hard":   {Qualitative, iwanthueAnswerHard},
	"iwanthue_102_hard":      {Qualitative, iwanthue102Hard},
	"iwanthue_32_soft":       {Qualitative, iwanthue32Soft},
	"prism_light":            {Qualitative, prismLight},
	"prism_dark":             {Qualitative, prismDark},
	"prism_1960s":            {Qualitative, prism1960s},
	"prism_2000s":            {Qualitative, prism2000s},
	"accent":                 {Qualitative, accent},
	"tab20":                  {Qualitative, tab20},
	"viridis":                {Sequential, viridis},
	"plasma":                 {Sequential, plasma},
	"inferno":                {Sequential, inferno},
	"magma":                  {Sequential, magma},
	"seurat":                 {Sequential, seurat},
}

// Palette returns the named palette.
func Palette(name string) (PaletteInfo, bool) {
	e, ok := palettes[name]
	if !ok {
		return PaletteInfo{}, false
	}
	colors := make([]string, len(e.colors))
	copy(colors, e.colors)
	return PaletteInfo{Name: name, Kind: e.kind, Colors: colors}, true
}

// PaletteNames returns all palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palettes returns every palette, sorted by name.
func Palettes() []PaletteInfo {
	names := PaletteNames()
	out := make([]PaletteInfo, 0, len(names))
	for _, name := range names {
		p, _ := Palette(name)
		out = append(out, p)
	}
	return out
}

// Colors from http://godsnotwheregodsnot.blogspot.de/2012/09/color-distribution-methodology.html
// with black removed, since annotations are often drawn in black.
var godsnot102 = []string{
	"#FFFF00", "#1CE6FF", "#FF34FF", "#FF4A46", "#008941", "#006FA6",
	"#A30059", "#FFDBE5", "#7A4900", "#0000A6", "#63FFAC", "#B79762",
	"#004D43", "#8FB0FF", "#997D87", "#5A0007", "#809693", "#6A3A4C",
	"#1B4400", "#4FC601", "#3B5DFF", "#4A3B53", "#FF2F80", "#61615A",
	"#BA0900", "#6B7900", "#00C2A0", "#FFAA92", "#FF90C9", "#B903AA",
	"#D16100", "#DDEFFF", "#000035", "#7B4F4B", "#A1C299", "#300018",
	"#0AA6D8", "#013349", "#00846F", "#372101", "#FFB500", "#C2FFED",
	"#A079BF", "#CC0744", "#C0B9B2", "#C2FF99", "#001E09", "#00489C",
	"#6F0062", "#0CBD66", "#EEC3FF", "#456D75", "#B77B68", "#7A87A1",
	"#788D66", "#885578", "#FAD09F", "#FF8A9A", "#D157A0", "#BEC459",
	"#456648", "#0086ED", "#886F4C", "#34362D", "#B4A8BD", "#00A6AA",
	"#452C2C", "#636375", "#A3C8C9", "#FF913F", "#938A81", "#575329",
	"#00FECF", "#B05B6F", "#8CD0FF", "#3B9700", "#04F757", "#C8A1A1",
	"#1E6E00", "#7900D7", "#A77500", "#6367A9", "#A05837", "#6B002C",
	"#772600", "#D790FF", "#9B9700", "#549E79", "#FFF69F", "#201625",
	"#72418F", "#BC23FF", "#99ADC0", "#3A2465", "#922329", "#5B4534",
	"#FDE8DC", "#404E55", "#0089A3", "#CB7E98", "#A4E804", "#324E72",
}

// Alphabet colors generated with https://medialab.github.io/iwanthue/
var iwanthueAlphabetHard = []string{
	"#009480", "#fd325b", "#3ee26f", "#364fd4", "#8bd840", "#e387ff",
	"#bfd034", "#bf007f", "#00a656", "#ac0036", "#00c9a3", "#9f2600",
	"#699cff", "#cca400", "#aeaaff", "#e16d00", "#005d91", "#fdb879",
	"#8f2a6b", "#0a6300", "#ff9dcd", "#606000", "#71d3f4", "#ffa289",
	"#a15c65", "#cb8285",
}

// 42 colors generated with iwanthue.
var iwanthueAnswerHard = []string{
	"#eb9300", "#9c61eb", "#189c0f", "#c857dd", "#80db6b", "#6436b1",
	"#f8bc2a", "#015ec2", "#c9cd4e", "#c60098", "#00b36c", "#f23bb0",
	"#017428", "#eb0067", "#00865d", "#ff529f", "#376200", "#8889ff",
	"#ac9700", "#0285d3", "#da6b00", "#00c9f1", "#db4615", "#01adde",
	"#f14536", "#6cc8ff", "#a15a00", "#b3bfff", "#a31432", "#93d5a3",
	"#a00d5c", "#008d7d", "#ff78c6", "#c3cc88", "#882d7a", "#ff9a67",
	"#73a3d4", "#7f4327", "#ff9bba", "#7a4366", "#d5a77d", "#8e3248",
}

// 102 colors generated with iwanthue.
var iwanthue102Hard = []string{
	"#6c3dc2", "#a1cf27", "#3e4bcf", "#43a100", "#9738bf", "#18d666",
	"#b5009b", "#36af29", "#9360ea", "#8cda51", "#1261e8", "#ecc22c",
	"#6376ff", "#c8b000", "#7184ff", "#4c9500", "#eb7bff", "#008812",
	"#e65cdd", "#007500", "#e23cb9", "#009c43", "#f52793", "#66dd8c",
	"#d4007b", "#00a869", "#f10d6e", "#02ba96", "#d10049", "#38dade",
	"#b31800", "#01c2dc", "#ff5f36", "#026ad0", "#e8a200", "#5d3daa",
	"#dcc740", "#ad81ff", "#638600", "#dd90ff", "#9b9500", "#911b88",
	"#c2ce67", "#0158ae", "#fb8918", "#56a4ff", "#ff742f", "#0282b6",
	"#c96600", "#6fd2f8", "#b20018", "#8cd5b0", "#cc0062", "#00722e",
	"#ff67c0", "#4c6800", "#be9fff", "#a28b00", "#cdafff", "#c37700",
	"#b9baff", "#aa7300", "#f8acfd", "#3e5b0e", "#ff70b9", "#01754c",
	"#ff4e61", "#0f5e44", "#ff547a", "#bccf77", "#84307d", "#d3c86e",
	"#4a4d87", "#e5c367", "#773f6b", "#fdb96b", "#9595cb", "#ff6147",
	"#3f5a26", "#ff77a9", "#686b00", "#c40030", "#56551e", "#ff8087",
	"#685001", "#c88fb7", "#895e00", "#88345f", "#f0bc88", "#932e43",
	"#ffb2a2", "#9e231a", "#eaa791", "#9a3a00", "#e398a0", "#933130",
	"#a48355", "#ff9370", "#9a565a", "#ff9f91", "#865838", "#a36854",
}

// 32 colors generated by k-means.
var iwanthue32Soft = []string{
	"#4baebc", "#e0462a", "#593ccf", "#60bf37", "#a83bd7", "#4eba68",
	"#d851ce", "#aeb538", "#4d2992", "#5d7e2c", "#816be1", "#d67a31",
	"#5077cd", "#cc9e4e", "#8f429d", "#5bb18e", "#db4092", "#36613e",
	"#d73a5b", "#77a0d0", "#973727", "#b48bd0", "#484218", "#d679af",
	"#a0ae72", "#46346f", "#8d6337", "#585f85", "#db7670", "#8e3265",
	"#cb9298", "#6c2f39",
}

// Prism Light from GraphPad Prism.
var prismLight = []string{
	"#A48AD3", "#1CC5FE", "#6FC7CF", "#FBA27D", "#FB7D80", "#2C1453",
	"#114CE8", "#0E6F7C", "#FB4F06", "#FB0005",
}

// Prism Dark from GraphPad Prism.
var prismDark = []string{
	"#2C1453", "#114CE8", "#0E6F7C", "#FB4F06", "#FB0005", "#A48AD3",
	"#1CC5FE", "#6FC7CF", "#FBA27D", "#FB7D80",
}

var prism1960s = []string{
	"#7BB44F", "#15A6EC", "#F5C02C", "#EE2926", "#961192", "#16325C",
}

var prism2000s = []string{
	"#155BE4", "#28CE53", "#FF0000", "#BE1572", "#1D8DEE", "#6AA823",
	"#FC4B08", "#000000",
}

// ColorBrewer Accent.
var accent = []string{
	"#7fc97f", "#beaed4", "#fdc086", "#ffff99", "#386cb0", "#f0027f",
	"#bf5b17", "#666666",
}

// Matplotlib tab20.
var tab20 = []string{
	"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD", "#8C564B",
	"#E377C2", "#7F7F7F", "#BCBD22", "#17BECF", "#AEC7E8", "#FFBB78",
	"#98DF8A", "#FF9896", "#C5B0D5", "#C49C94", "#F7B6D2", "#C7C7C7",
	"#DBDB8D", "#9EDAE5",
}

// Anchors of the matplotlib sequential maps.
var viridis = []string{
	"#440154", "#482374", "#404387", "#345E8D", "#29788E", "#20908C",
	"#22A784", "#44BE70", "#79D151", "#BDDE26", "#FDE725",
}

var plasma = []string{
	"#0D0887", "#4B03A1", "#7D03A8", "#A82296", "#CB4679", "#E56B5D",
	"#F89441", "#FDC328", "#F0F921",
}

var inferno = []string{
	"#000004", "#280B54", "#65156E", "#9F2A63", "#D44842", "#F57D15",
	"#FAC127", "#FCFFA4",
}

var magma = []string{
	"#000004", "#1C1044", "#4F127B", "#812581", "#B5367A", "#E55064",
	"#FB8761", "#FEC287", "#FCFDBF",
}

var seurat = []string{
	"#D3D3D3", "#FF0000",
}
