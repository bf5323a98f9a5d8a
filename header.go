// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bipring

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Header is the SPSC control block placed at the start of a region.
//
// Its layout is an ABI: offset 0 is read, 8 is write, 16 is last, 24 is
// bufferSize. Two peers mapping the same bytes at different virtual
// addresses observe the same cursors because every field is an offset
// relative to the region's own start, never an absolute pointer. Unlike
// the padded hot fields elsewhere in this package, Header carries no
// cache-line padding between fields: inserting any would break the wire
// layout that a second process maps independently.
type Header struct {
	read       atomix.Uint64 // next unread byte offset; owned by the reader
	write      atomix.Uint64 // one past the last committed byte; owned by the writer
	last       atomix.Uint64 // high-water mark before a wraparound gap; owned by the writer
	bufferSize uint64        // payload length in bytes; fixed at creation
}

const headerSize = int(unsafe.Sizeof(Header{}))

// CreateHeader places a fresh Header at the start of region and returns it
// along with the payload slice that follows it. region must be at least
// headerSize+1 bytes; the caller is the sole producer responsible for
// creation, and must not call CreateHeader concurrently with any peer's
// use of the same bytes.
func CreateHeader(region []byte) (*Header, []byte, error) {
	if len(region) <= headerSize {
		return nil, nil, ErrInvalidRegion
	}
	h := (*Header)(unsafe.Pointer(unsafe.SliceData(region)))
	h.read.StoreRelaxed(0)
	h.write.StoreRelaxed(0)
	h.last.StoreRelaxed(0)
	h.bufferSize = uint64(len(region) - headerSize)
	return h, region[headerSize:], nil
}

// OpenHeader overlays an already-initialized Header onto region, for a
// peer (typically a Reader) attaching to a region a writer already
// created. It validates that the header's recorded buffer size matches
// the region's actual length, catching a mismatched or garbage region.
func OpenHeader(region []byte) (*Header, []byte, error) {
	if len(region) <= headerSize {
		return nil, nil, ErrInvalidRegion
	}
	h := (*Header)(unsafe.Pointer(unsafe.SliceData(region)))
	if int(h.bufferSize) != len(region)-headerSize {
		return nil, nil, ErrInvalidRegion
	}
	return h, region[headerSize:], nil
}

// BufferSize returns the fixed payload length recorded at creation.
func (h *Header) BufferSize() uint64 {
	return h.bufferSize
}

// Read returns the current read cursor. Exposed for diagnostics and
// testing; neither writer nor reader code needs this outside the package.
func (h *Header) Read() uint64 {
	return h.read.LoadAcquire()
}

// Write returns the current write cursor.
func (h *Header) Write() uint64 {
	return h.write.LoadAcquire()
}

// Last returns the current high-water mark.
func (h *Header) Last() uint64 {
	return h.last.LoadAcquire()
}
