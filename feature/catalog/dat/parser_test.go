package dat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redumpSample = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE datafile PUBLIC "-//Logiqx//DTD ROM Management Datafile//EN" "http://www.logiqx.com/Dats/datafile.dtd">
<datafile>
	<header>
		<name>Sony - PlayStation</name>
		<description>Sony - PlayStation - Discs (10850) (2024-01-01 00-00-00)</description>
		<version>2024-01-01 00-00-00</version>
		<homepage>redump.org</homepage>
	</header>
	<game name="Crash Bandicoot (USA)" id="0001">
		<category>Games</category>
		<description>Crash Bandicoot (USA)</description>
		<rom name="Crash Bandicoot (USA).cue" size="93" crc="8A1B7D2E" md5="3C9A1F2B8E6D4C0A1B2C3D4E5F607182" sha1="0123456789ABCDEF0123456789ABCDEF01234567"/>
		<rom name="Crash Bandicoot (USA).bin" size="563992800" crc="12345678" md5="00112233445566778899aabbccddeeff" sha1="89abcdef0123456789abcdef0123456789abcdef" status="verified"/>
	</game>
	<game name="Crash Bandicoot (USA) (Rev 1)" id="0002" cloneofid="0001">
		<category>Games</category>
		<category>Demos</category>
		<rom name="Crash Bandicoot (USA) (Rev 1).bin" size="563992800" crc="87654321" serial="SCUS-94900"/>
	</game>
</datafile>`

func TestParse(t *testing.T) {
	df, err := Parse(strings.NewReader(redumpSample))
	require.NoError(t, err)

	assert.Equal(t, "Sony - PlayStation", df.Header.Name)
	assert.Equal(t, "2024-01-01 00-00-00", df.Header.Version)
	assert.Nil(t, df.Header.Subset)
	require.Len(t, df.Games, 2)

	first := df.Games[0]
	assert.Equal(t, "Crash Bandicoot (USA)", first.Name)
	require.NotNil(t, first.InternalID)
	assert.Equal(t, "0001", *first.InternalID)
	assert.Nil(t, first.CloneOfInternalID)
	assert.Equal(t, []string{"Games"}, first.Categories)
	require.Len(t, first.Files, 2)

	cue := first.Files[0]
	assert.Equal(t, "8a1b7d2e", cue.CRC)
	require.NotNil(t, cue.MD5)
	assert.Equal(t, "3c9a1f2b8e6d4c0a1b2c3d4e5f607182", *cue.MD5)
	require.NotNil(t, cue.Size)
	assert.Equal(t, int64(93), *cue.Size)
	assert.Nil(t, cue.SHA256)
	assert.Nil(t, cue.Status)

	bin := first.Files[1]
	require.NotNil(t, bin.Status)
	assert.Equal(t, "verified", *bin.Status)

	clone := df.Games[1]
	require.NotNil(t, clone.CloneOfInternalID)
	assert.Equal(t, "0001", *clone.CloneOfInternalID)
	assert.Equal(t, []string{"Games", "Demos"}, clone.Categories)
	require.NotNil(t, clone.Files[0].Serial)
	assert.Equal(t, "SCUS-94900", *clone.Files[0].Serial)
	assert.Nil(t, clone.Files[0].MD5)
}

func TestParseSubset(t *testing.T) {
	doc := `<datafile><header><name>Nintendo - Game Boy Advance (Video)</name><version>20240101</version><subset>Video</subset></header></datafile>`
	df, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.NotNil(t, df.Header.Subset)
	assert.Equal(t, "Video", *df.Header.Subset)
	assert.Empty(t, df.Games)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`<datafile><header><name>Broken`))
	require.Error(t, err)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestParseInvalidSize(t *testing.T) {
	doc := `<datafile><header><name>X</name></header><game name="G"><rom name="a.bin" size="abc" crc="00"/></game></datafile>`
	_, err := Parse(strings.NewReader(doc))

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, err.Error(), "invalid size")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "sample.dat")
	require.NoError(t, os.WriteFile(path, []byte(redumpSample), 0o644))
	df, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, df.Games, 2)

	broken := filepath.Join(dir, "broken.dat")
	require.NoError(t, os.WriteFile(broken, []byte("not xml at all <"), 0o644))
	_, err = ParseFile(broken)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, broken, pe.Source)

	_, err = ParseFile(filepath.Join(dir, "missing.dat"))
	assert.Error(t, err)
	assert.False(t, errors.As(err, &pe))
}
