package premiere

import "encoding/xml"

// The types below mirror the xmeml v5 element tree. Field order matters:
// encoding/xml emits elements in declaration order and the importer is
// picky about some of them.

type document struct {
	XMLName xml.Name `xml:"xmeml"`
	Version string   `xml:"version,attr"`
	Project project  `xml:"project"`
}

type project struct {
	Name     string   `xml:"name"`
	Children children `xml:"children"`
}

type children struct {
	Sequence sequence `xml:"sequence"`
}

type sequence struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name"`
	Duration int64  `xml:"duration"`
	Rate     rate   `xml:"rate"`
	Media    media  `xml:"media"`
}

type rate struct {
	Timebase int    `xml:"timebase"`
	NTSC     string `xml:"ntsc"`
}

type media struct {
	Video video `xml:"video"`
	Audio audio `xml:"audio"`
}

type video struct {
	Format videoFormat `xml:"format"`
	Track  videoTrack  `xml:"track"`
}

type videoFormat struct {
	SampleCharacteristics sampleCharacteristics `xml:"samplecharacteristics"`
}

type sampleCharacteristics struct {
	Rate             rate   `xml:"rate"`
	Width            int    `xml:"width"`
	Height           int    `xml:"height"`
	Anamorphic       string `xml:"anamorphic"`
	PixelAspectRatio string `xml:"pixelaspectratio"`
}

type videoTrack struct {
	Items []generatorItem `xml:"generatoritem"`
}

type generatorItem struct {
	ID        string `xml:"id,attr"`
	Name      string `xml:"name"`
	ItemType  string `xml:"generatoritemtype"`
	Rate      rate   `xml:"rate"`
	Start     string `xml:"start"`
	End       string `xml:"end"`
	In        string `xml:"in"`
	Out       string `xml:"out"`
	AlphaType string `xml:"alphatype"`
	Effect    effect `xml:"effect"`
}

type effect struct {
	Name       string      `xml:"name"`
	EffectID   string      `xml:"effectid"`
	Category   string      `xml:"effectcategory"`
	EffectType string      `xml:"effecttype"`
	MediaType  string      `xml:"mediatype"`
	Parameters []parameter `xml:"parameter"`
}

type parameter struct {
	AuthoringApp string `xml:"authoringApp,attr"`
	ParameterID  string `xml:"parameterid"`
	Name         string `xml:"name"`
	Value        string `xml:"value"`
}

type audio struct {
	Track audioTrack `xml:"track"`
}

type audioTrack struct {
	Items []clipItem `xml:"clipitem"`
}

type clipItem struct {
	ID    string  `xml:"id,attr"`
	Name  string  `xml:"name"`
	Start string  `xml:"start"`
	End   string  `xml:"end"`
	In    string  `xml:"in"`
	Out   string  `xml:"out"`
	File  fileRef `xml:"file"`
}

type fileRef struct {
	Name    string `xml:"name"`
	PathURL string `xml:"pathurl"`
	Rate    rate   `xml:"rate"`
}
