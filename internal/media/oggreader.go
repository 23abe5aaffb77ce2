package media

import (
	"encoding/binary"
	"errors"
)

var (
	errInvalidOggMagic   = errors.New("ogg: invalid capture pattern")
	errInvalidOggVersion = errors.New("ogg: unsupported version")
	errTruncatedOggPage  = errors.New("ogg: truncated page")
)

const (
	oggHeaderSize = 27

	oggFlagContinued = 0x01
	oggFlagBOS       = 0x02
	oggFlagEOS       = 0x04
)

// oggPage is one page of an in-memory Ogg stream. Body aliases the source
// buffer.
type oggPage struct {
	Offset       int64
	Flags        byte
	GranulePos   int64
	SerialNumber uint32
	SequenceNum  uint32
	SegmentTable []uint8
	Body         []byte
}

func (p *oggPage) continued() bool { return p.Flags&oggFlagContinued != 0 }

func (p *oggPage) bos() bool { return p.Flags&oggFlagBOS != 0 }

// hasGranule reports whether a packet ends on this page. Pages carrying only
// the middle of a packet store -1.
func (p *oggPage) hasGranule() bool { return p.GranulePos >= 0 }

// parseOggPage parses the page starting at data[off].
func parseOggPage(data []byte, off int64) (*oggPage, error) {
	if int64(len(data))-off < oggHeaderSize {
		return nil, errTruncatedOggPage
	}
	buf := data[off : off+oggHeaderSize]

	if string(buf[0:4]) != "OggS" {
		return nil, errInvalidOggMagic
	}
	if buf[4] != 0 {
		return nil, errInvalidOggVersion
	}

	page := &oggPage{
		Offset:       off,
		Flags:        buf[5],
		GranulePos:   int64(binary.LittleEndian.Uint64(buf[6:14])), //nolint:gosec // -1 marks "no granule"
		SerialNumber: binary.LittleEndian.Uint32(buf[14:18]),
		SequenceNum:  binary.LittleEndian.Uint32(buf[18:22]),
		// checksum at buf[22:26] is not verified
	}
	numSegments := int64(buf[26])

	segStart := off + oggHeaderSize
	if int64(len(data)) < segStart+numSegments {
		return nil, errTruncatedOggPage
	}
	page.SegmentTable = data[segStart : segStart+numSegments]

	var bodyLen int64
	for _, s := range page.SegmentTable {
		bodyLen += int64(s)
	}
	bodyStart := segStart + numSegments
	if int64(len(data)) < bodyStart+bodyLen {
		return nil, errTruncatedOggPage
	}
	page.Body = data[bodyStart : bodyStart+bodyLen]

	return page, nil
}

// size returns the encoded size of the page.
func (p *oggPage) size() int64 {
	return oggHeaderSize + int64(len(p.SegmentTable)) + int64(len(p.Body))
}

// splitPackets appends the packets of the page to dst. A packet is complete
// when its last segment is shorter than 255 bytes; a trailing run of 255-byte
// segments is returned as partial and continues on the next page.
func (p *oggPage) splitPackets(dst [][]byte) (packets [][]byte, partial []byte) {
	packets = dst
	var start, pos int
	for _, seg := range p.SegmentTable {
		pos += int(seg)
		if seg < 255 {
			packets = append(packets, p.Body[start:pos])
			start = pos
		}
	}
	if start < pos {
		partial = p.Body[start:pos]
	}
	return packets, partial
}

// indexOggPages parses every page of data. Parsing stops at the first
// malformed page; at least one valid page is required.
func indexOggPages(data []byte) ([]*oggPage, error) {
	var pages []*oggPage
	var off int64
	for off < int64(len(data)) {
		page, err := parseOggPage(data, off)
		if err != nil {
			if len(pages) == 0 {
				return nil, err
			}
			break
		}
		pages = append(pages, page)
		off += page.size()
	}
	if len(pages) == 0 {
		return nil, errTruncatedOggPage
	}
	return pages, nil
}
