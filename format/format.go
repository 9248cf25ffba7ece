// Package format implements Voyager's versioned on-disk layout (spec §2
// component G, §4.G, §6): a magic-header probe that dispatches between the
// current metadata-carrying format and the legacy offset-only format,
// followed by a fixed-order serialization of the HNSW graph body.
package format

import (
	"bytes"

	verrors "github.com/spotify/voyager/errors"
	"github.com/spotify/voyager/kernel"
	"github.com/spotify/voyager/storage"
	"github.com/spotify/voyager/stream"
)

// Magic is the 4-byte header identifying the current format family.
var Magic = [4]byte{'V', 'O', 'Y', 'A'}

// CurrentVersion is the only version this package writes.
const CurrentVersion int32 = 1

// minSupportedVersion below this hints at "upgrade the library"; at or
// above it but unrecognized hints at corruption (spec §4.G, §6).
const minSupportedVersion int32 = 20

// Metadata is the V1 metadata block (spec §6 "V1 metadata").
type Metadata struct {
	NumDimensions               int32
	Space                       kernel.Space
	Storage                     storage.Kind
	MaxNorm                     float32
	UseOrderPreservingTransform bool
}

// Probe reports which format family in starts with, by peeking its first 4
// bytes without consuming them (spec §4.A "peek", §4.G "On load").
func Probe(in stream.Input) (isCurrent bool, err error) {
	peeked, err := in.Peek(4)
	if err != nil {
		return false, err
	}
	return len(peeked) == 4 && bytes.Equal(peeked, Magic[:]), nil
}

// WriteHeader writes the magic and version fields.
func WriteHeader(out stream.Output) error {
	if err := out.Write(Magic[:]); err != nil {
		return err
	}
	return stream.WriteI32(out, CurrentVersion)
}

// ReadVersion reads and validates the version field, assuming the magic
// bytes have already been confirmed present (but not yet consumed) via
// Probe; it consumes the magic and the version together.
func ReadVersion(in stream.Input) (int32, error) {
	var magic [4]byte
	if err := in.ReadFull(magic[:]); err != nil {
		return 0, err
	}
	if !bytes.Equal(magic[:], Magic[:]) {
		return 0, verrors.Corruption("format.ReadVersion", "expected magic %q, got %q", Magic[:], magic[:])
	}
	version, err := stream.ReadI32(in)
	if err != nil {
		return 0, err
	}
	if version != CurrentVersion {
		return 0, verrors.UnsupportedVersion("format.ReadVersion", version)
	}
	return version, nil
}

// WriteMetadata writes the V1 metadata block.
func WriteMetadata(out stream.Output, meta Metadata) error {
	if err := stream.WriteI32(out, meta.NumDimensions); err != nil {
		return err
	}
	if err := stream.WriteU8(out, uint8(meta.Space)); err != nil {
		return err
	}
	if err := stream.WriteU8(out, uint8(meta.Storage)); err != nil {
		return err
	}
	if err := stream.WriteF32(out, meta.MaxNorm); err != nil {
		return err
	}
	return stream.WriteU8(out, boolToU8(meta.UseOrderPreservingTransform))
}

// ReadMetadata reads the V1 metadata block.
func ReadMetadata(in stream.Input) (Metadata, error) {
	var meta Metadata
	var err error
	if meta.NumDimensions, err = stream.ReadI32(in); err != nil {
		return meta, err
	}
	spaceByte, err := stream.ReadU8(in)
	if err != nil {
		return meta, err
	}
	meta.Space = kernel.Space(spaceByte)
	storageByte, err := stream.ReadU8(in)
	if err != nil {
		return meta, err
	}
	meta.Storage = storage.Kind(storageByte)
	if meta.MaxNorm, err = stream.ReadF32(in); err != nil {
		return meta, err
	}
	transformByte, err := stream.ReadU8(in)
	if err != nil {
		return meta, err
	}
	meta.UseOrderPreservingTransform = transformByte != 0
	return meta, nil
}

// ReadLegacyOffset reads the 8-byte little-endian offset that opens a
// legacy V0 file (spec §4.G, §9 Open Questions). Probe's 4-byte peek
// consumes nothing, so on a stream positioned at its start this reads the
// file's first 8 bytes as the offset.
func ReadLegacyOffset(in stream.Input) (uint64, error) {
	return stream.ReadU64(in)
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
