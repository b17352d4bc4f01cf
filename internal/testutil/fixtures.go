package testutil

import "testing"

// RadiosFile is a catalog with one radio that has a description (FT-60)
// and one that does not (VX-8).
const RadiosFile = `# test catalog
FT-60 41 48 30 31 37 00

radio VX-8
	headercmp 41 48 30 32 39
	filesize 0x100
endradio
`

// FT60Schema describes SampleImage.
const FT60Schema = `enum Power
	0 High
	altname HI
	1 Mid
	2 Low
	altname LO
endenum

enum Mode
	0 FM
	1 AM
	2 NFM
endenum

enum Step
	0 "5 kHz"
	1 "10 kHz"
	2 "12.5 kHz"
	3 "25 kHz"
endenum

tab Settings
	Beep      (0x10,0,1)    CheckBox
	Lock      (0x10,1,1)    CheckBox
	Backlight (0x10,4,4)    Int
	Squelch   (0x11,0,4 : \
	           0x12,0,4)    Int
	Owner     (0x20,48)     YaesuString
	Separator -             Empty
	Serial    (0x28,16)     HexDigits
endtab

list Memories 4 16
	Freq      (0x40,24)     BCDFreq
	Power     (0x43,0,2)    Power
	Mode      (0x43,2,2)    Mode
	Step      (0x43,4,3)    Step
	Skip      (0x43,7,1)    CheckBox
	Name      (0x44,48)     YaesuString
	Comment   (0x4A,48)     String
endlist
`

// SampleImageSize is the length of SampleImage.
const SampleImageSize = 0x80

// SampleImage returns a fresh FT-60 image with these values:
//
//	Settings: Beep=1 Lock=0 Backlight=5 Squelch=50 Owner="W1AW  " Serial=0x1234
//	Memories[0]: 146.520 Low FM "12.5 kHz" Skip=0 "REPEAT" "HOME  "
//	Memories[1]: 446.000 High NFM "25 kHz" Skip=1 "SIMPLX" "CALL  "
//
// Rows 2 and 3 are zero.
func SampleImage() []byte {
	img := make([]byte, SampleImageSize)
	copy(img, []byte{0x41, 0x48, 0x30, 0x31, 0x37, 0x00})

	img[0x10] = 0x51
	img[0x11] = 0x03
	img[0x12] = 0x02
	copy(img[0x20:], []byte{0x20, 0x01, 0x0A, 0x20, 0x24, 0x24})
	img[0x28] = 0x34
	img[0x29] = 0x12

	copy(img[0x40:], []byte{0x01, 0x46, 0x52, 0x22})
	copy(img[0x44:], []byte{0x1B, 0x0E, 0x19, 0x0E, 0x0A, 0x1D})
	copy(img[0x4A:], "HOME  ")

	copy(img[0x50:], []byte{0x04, 0x46, 0x00, 0xB8})
	copy(img[0x54:], []byte{0x1C, 0x12, 0x16, 0x19, 0x15, 0x21})
	copy(img[0x5A:], "CALL  ")
	return img
}

// ConfigDir writes a configuration directory holding RadiosFile and
// FT60Schema, plus any extra files, and returns its path.
func ConfigDir(t *testing.T, extra map[string]string) string {
	t.Helper()

	files := map[string]string{
		"radios":    RadiosFile,
		"FT-60.rad": FT60Schema,
	}
	for name, content := range extra {
		files[name] = content
	}
	return WriteFiles(t, files)
}
