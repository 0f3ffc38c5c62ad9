// Package blockparse decodes the version-dependent binary header of raw
// block records read from the block store.
package blockparse

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/zartrux/nonce-extractor-backend/internal/model"
)

// minHeaderLen covers the major version, minor version and block
// timestamp fields at the front of every record.
const minHeaderLen = 6

// CorruptRecordError reports a record whose header cannot be decoded.
// Corrupt records are skipped, never fatal.
type CorruptRecordError struct {
	Reason string
	Size   int
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt block record (%d bytes): %s", e.Size, e.Reason)
}

// OffsetTable maps a major block version to the byte offset of the nonce
// field. Versions without an explicit entry fall back to the default
// offset. The table is immutable once constructed.
type OffsetTable struct {
	offsets       map[uint8]int
	defaultOffset int
}

// NewOffsetTable validates and builds an offset table. A usable default
// offset is mandatory; per-version entries are optional.
func NewOffsetTable(offsets map[uint8]int, defaultOffset int) (OffsetTable, error) {
	if defaultOffset < minHeaderLen {
		return OffsetTable{}, fmt.Errorf("default nonce offset %d overlaps the fixed header (min %d)", defaultOffset, minHeaderLen)
	}
	copied := make(map[uint8]int, len(offsets))
	for version, offset := range offsets {
		if offset < minHeaderLen {
			return OffsetTable{}, fmt.Errorf("nonce offset %d for major version %d overlaps the fixed header (min %d)", offset, version, minHeaderLen)
		}
		copied[version] = offset
	}
	return OffsetTable{offsets: copied, defaultOffset: defaultOffset}, nil
}

// DefaultOffsetTable returns the production block format table.
func DefaultOffsetTable() OffsetTable {
	table, err := NewOffsetTable(map[uint8]int{1: 43, 2: 47, 3: 51, 4: 55}, 43)
	if err != nil {
		panic(err)
	}
	return table
}

// WithOverrides returns a copy of the table with the given per-version
// offsets merged over the existing entries and the default offset
// replaced. Versions not named in overrides keep their current mapping.
func (t OffsetTable) WithOverrides(overrides map[uint8]int, defaultOffset int) (OffsetTable, error) {
	merged := make(map[uint8]int, len(t.offsets)+len(overrides))
	for version, offset := range t.offsets {
		merged[version] = offset
	}
	for version, offset := range overrides {
		merged[version] = offset
	}
	return NewOffsetTable(merged, defaultOffset)
}

// Lookup returns the nonce offset for a major version.
func (t OffsetTable) Lookup(majorVersion uint8) int {
	if offset, ok := t.offsets[majorVersion]; ok {
		return offset
	}
	return t.defaultOffset
}

// Versions lists the explicitly mapped major versions in ascending order.
func (t OffsetTable) Versions() []uint8 {
	versions := make([]uint8, 0, len(t.offsets))
	for v := range t.offsets {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })
	return versions
}

// Parser decodes raw block records using a fixed offset table.
type Parser struct {
	table OffsetTable
}

// NewParser builds a parser over the given offset table.
func NewParser(table OffsetTable) *Parser {
	return &Parser{table: table}
}

// Parse decodes the header of a raw block record. Layout: byte 0 major
// version, byte 1 minor version, bytes 2-5 little-endian block timestamp,
// and a little-endian uint32 nonce at the version-mapped offset.
func (p *Parser) Parse(raw []byte) (model.ParsedBlock, error) {
	if len(raw) < minHeaderLen {
		return model.ParsedBlock{}, &CorruptRecordError{
			Reason: fmt.Sprintf("record shorter than fixed header (%d bytes)", minHeaderLen),
			Size:   len(raw),
		}
	}

	majorVersion := raw[0]
	offset := p.table.Lookup(majorVersion)
	if len(raw) < offset+4 {
		return model.ParsedBlock{}, &CorruptRecordError{
			Reason: fmt.Sprintf("nonce field at offset %d out of bounds for major version %d", offset, majorVersion),
			Size:   len(raw),
		}
	}

	return model.ParsedBlock{
		Nonce:          binary.LittleEndian.Uint32(raw[offset : offset+4]),
		MajorVersion:   majorVersion,
		MinorVersion:   raw[1],
		BlockTimestamp: binary.LittleEndian.Uint32(raw[2:6]),
		Size:           len(raw),
	}, nil
}
