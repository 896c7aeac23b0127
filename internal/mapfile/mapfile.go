// Package mapfile decodes the Civ5Map binary map format into a world.Map.
//
// The format is little-endian throughout: a fixed header, a set of
// length-prefixed string tables, then one 8-byte record per tile in row-major
// order. Sections the engine does not need (resources, features, scenario
// data) are skipped using the declared lengths, never parsed.
package mapfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/talgya/hexfront/internal/world"
)

// Decode failure sentinels. Every error returned by Decode wraps exactly one
// of these, so callers can classify failures with errors.Is.
var (
	ErrBadVersion  = errors.New("mapfile: unsupported format version")
	ErrTruncated   = errors.New("mapfile: truncated data")
	ErrDimensions  = errors.New("mapfile: invalid map dimensions")
	ErrTerrainID   = errors.New("mapfile: terrain id out of range")
	ErrTerrainName = errors.New("mapfile: unknown terrain type")
)

// Supported format versions. The version byte doubles as the file signature:
// anything outside this range is rejected before geometry is read.
const (
	minVersion = 1
	maxVersion = 12
)

// tileRecordSize is the fixed size of one per-tile record:
// terrainID, resourceID, feature1ID, riverFlags, elevation, unused,
// feature2ID, unused.
const tileRecordSize = 8

// Elevation values in tile records.
const (
	elevFlat     = 0
	elevHill     = 1
	elevMountain = 2
)

// terrainByName maps the format's terrain table names to the engine's
// terrain set. The table is exhaustive: a name outside it fails the decode.
var terrainByName = map[string]world.Terrain{
	"TERRAIN_GRASS":  world.TerrainGrassland,
	"TERRAIN_PLAINS": world.TerrainPlain,
	"TERRAIN_DESERT": world.TerrainDesert,
	"TERRAIN_TUNDRA": world.TerrainTundra,
	"TERRAIN_SNOW":   world.TerrainSnow,
	"TERRAIN_COAST":  world.TerrainWater,
	"TERRAIN_OCEAN":  world.TerrainWater,
}

// Header holds the decoded file header. Only width, height, and the terrain
// table drive the engine; the rest is retained for map inspection tools.
type Header struct {
	Version     uint8
	Width       int
	Height      int
	PlayerCount uint8
	Flags       uint32
	Terrain     []string
	Name        string
	Description string
}

// reader walks the byte buffer, tracking position and reporting truncation.
type reader struct {
	buf []byte
	off int
}

func (r *reader) u8() (uint8, error) {
	if r.off+1 > len(r.buf) {
		return 0, fmt.Errorf("%w: byte at offset %d", ErrTruncated, r.off)
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.off+4 > len(r.buf) {
		return 0, fmt.Errorf("%w: u32 at offset %d", ErrTruncated, r.off)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.buf) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTruncated, n, r.off)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) str(n int) (string, error) {
	b, err := r.bytes(n)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\x00"), nil
}

// strList reads an n-byte blob of NUL-separated names.
func (r *reader) strList(n int) ([]string, error) {
	b, err := r.bytes(n)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(b), "\x00"), "\x00"), nil
}

func decodeHeader(r *reader) (*Header, error) {
	version, err := r.u8()
	if err != nil {
		return nil, err
	}
	if version < minVersion || version > maxVersion {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, version)
	}

	width, err := r.u32()
	if err != nil {
		return nil, err
	}
	height, err := r.u32()
	if err != nil {
		return nil, err
	}
	playerCount, err := r.u8()
	if err != nil {
		return nil, err
	}
	flags, err := r.u32()
	if err != nil {
		return nil, err
	}

	// Four declared table lengths, one scalar with no backing section,
	// then the name and description lengths, in file order.
	var lens [7]int
	for i := range lens {
		v, err := r.u32()
		if err != nil {
			return nil, err
		}
		lens[i] = int(v)
	}
	terrainLen, feature1Len, feature2Len, resourceLen := lens[0], lens[1], lens[2], lens[3]
	nameLen, descLen := lens[5], lens[6]

	terrain, err := r.strList(terrainLen)
	if err != nil {
		return nil, err
	}
	// Feature and resource tables are present but unused by the engine.
	if _, err := r.bytes(feature1Len); err != nil {
		return nil, err
	}
	if _, err := r.bytes(feature2Len); err != nil {
		return nil, err
	}
	if _, err := r.bytes(resourceLen); err != nil {
		return nil, err
	}
	name, err := r.str(nameLen)
	if err != nil {
		return nil, err
	}
	desc, err := r.str(descLen)
	if err != nil {
		return nil, err
	}

	// Trailing world-size blob, length-prefixed, opaque.
	blobLen, err := r.u32()
	if err != nil {
		return nil, err
	}
	if _, err := r.bytes(int(blobLen)); err != nil {
		return nil, err
	}

	if width == 0 || height == 0 || width > 1<<14 || height > 1<<14 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}

	return &Header{
		Version:     version,
		Width:       int(width),
		Height:      int(height),
		PlayerCount: playerCount,
		Flags:       flags,
		Terrain:     terrain,
		Name:        name,
		Description: desc,
	}, nil
}

// Decode parses a map file into a world.Map. Either a fully valid map is
// returned or an error wrapping one of the package sentinels; no partial map
// ever escapes. Bytes following the tile array (rivers, scenario data) are
// ignored.
func Decode(data []byte) (*world.Map, error) {
	r := &reader{buf: data}
	h, err := decodeHeader(r)
	if err != nil {
		return nil, err
	}

	count := h.Width * h.Height
	tiles, err := r.bytes(count * tileRecordSize)
	if err != nil {
		return nil, fmt.Errorf("%w (tile array, want %d cells)", ErrTruncated, count)
	}

	cells := make([]world.Cell, count)
	for i := 0; i < count; i++ {
		rec := tiles[i*tileRecordSize : (i+1)*tileRecordSize]
		terrain, err := terrainForTile(h.Terrain, rec[0], rec[4])
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cells[i] = world.Cell{Terrain: terrain, RiverFlags: rec[3]}
	}

	m, err := world.NewMap(h.Width, h.Height, cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDimensions, err)
	}
	m.Name = h.Name
	return m, nil
}

// terrainForTile resolves one tile record to a terrain value. Elevation
// overrides the base terrain: 1 is a hill, 2 a mountain.
func terrainForTile(table []string, terrainID, elevation uint8) (world.Terrain, error) {
	if int(terrainID) >= len(table) {
		return 0, fmt.Errorf("%w: id %d, table has %d entries",
			ErrTerrainID, terrainID, len(table))
	}
	switch elevation {
	case elevHill:
		return world.TerrainHill, nil
	case elevMountain:
		return world.TerrainMountain, nil
	}
	name := table[terrainID]
	terrain, ok := terrainByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrTerrainName, name)
	}
	return terrain, nil
}

// DecodeFile reads and decodes a map file from disk.
func DecodeFile(path string) (*world.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	return Decode(data)
}
