package uview

// A UView .dat file starts with a fixed preamble (file header, optional
// recipe slot, first image header block), followed by the "leem data"
// block of tagged metadata records, an optional markup block, and ends
// with the raw 16-bit image. The image is anchored to the end of the file:
//
//  - file header: 104 bytes,
//  - recipe slot: 128 bytes, zero filled when no recipe is attached,
//  - image header: 28 bytes then either 240 bytes of leem data + 20 spare
//    bytes (simple layout) or 260 spare bytes, the markup block and a
//    leem data block whose length is the layout selector,
//  - image: width * height little-endian uint16, bottom row first.

const (
	fileIDPrefix = "UKSOFT" // Identifier written by the acquisition software.

	fileIDLen      = 20
	fileHeaderLen  = 104
	recipeSlotLen  = 128
	imageHeaderLen = 28

	simpleLayoutMax   = 2   // Layout selectors up to this value use the simple layout.
	simpleLeemDataLen = 240 // Leem data length of the simple layout.
	simpleSpareLen    = 20
	extendedSpareLen  = 260
	markupBlockAlign  = 128

	markupHeaderLen = 4 // Unused header in front of the first markup record.
)

// Tags of the leem data block.
const (
	tStageMicrometers = 100 // Mitutoyo X, Y
	tCameraExposure   = 104 // Exposure + averaging mode
	tFieldOfView      = 110
	tRotation         = 113
	tImageTitle       = 233
	tThetaPhi         = 239
	tSpinState        = 240
	tMirrorState      = 242
	tMCPScreen        = 243
	tMCPChannelPlate  = 244

	tEnd = 255 // Sentinel, the remainder of the block is padding.
)

// Pressure gauges, each record carries its own label and unit.
// 106: MCH, 235: COL, 236: Gauge 3, 237: PCH.
var gaugeTags = [...]byte{106, 235, 236, 237}

// Tags sharing the "name+unit digit, 0, float32" layout.
var standardTags = [...]byte{
	11, 38, 39,
	128, 129, 130, 131, 132, 133, 134, 135, 136, 137, 138, 140, 141, 142, 143,
	144, 145, 146, 147, 148, 149, 150, 151, 152, 153, 154, 155, 156, 157, 158,
	159, 160, 161, 162, 163, 164, 165, 168, 169, 170, 171, 172, 173, 174, 175,
	176, 177, 178, 179, 180, 181, 182, 183, 184, 185, 186, 187, 188, 189, 190,
	191, 192, 194, 195, 196, 197, 198, 199, 200, 201, 202, 203, 204, 205, 206,
	207, 208, 209, 210, 211, 212, 213, 214, 215, 219, 222,
}

// units is indexed by the ASCII digit ending the name of a standard field.
var units = [...]string{"", "V", "mA", "A", "°C", "K", "mV", "pA", "nA", "µA"}

// Markup record types.
const (
	mkEnd       = 0
	mkArbitrary = 3 // Arbitrary cross section.
	mkMarker    = 6

	mkArbitraryLen = 14
	mkMarkerLen    = 24
)

// Averaging modes of the camera exposure record.
const (
	avgNone    = 0
	avgSliding = 255
)

// Fixed field names.
const (
	NameCameraExposure  = "Camera Exposure"
	NameAverageImages   = "Average Images"
	NameImageTitle      = "Image Title"
	NameMCPScreen       = "MCPscreen"
	NameMCPChannelPlate = "MCPchannelplate"
	NameMitutoyoX       = "Mitutoyo X"
	NameMitutoyoY       = "Mitutoyo Y"
	NameMirrorState     = "MirrorState"
	NameFOV             = "FOV"
	NameFOVCalFactor    = "FOV cal. factor"
	NameLEED            = "LEED"
	NameDispPlane       = "disp_plane"
	NameRotation        = "Rotation"
	NameSpin            = "Spin up_down"
	NameTheta           = "Theta"
	NamePhi             = "Phi"
)

const micron = "µm"
