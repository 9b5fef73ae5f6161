package assets

import "encoding/binary"

// detectDimensions reads pixel dimensions straight out of PNG, GIF or JPEG
// headers. Intentionally not a full decoder: the sync job only needs width
// and height attributes, and a malformed file simply yields (0, 0).
func detectDimensions(data []byte) (width, height int) {
	if len(data) < 24 {
		return 0, 0
	}

	// PNG: IHDR width/height at fixed offsets after the signature.
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4e && data[3] == 0x47 {
		w := int(binary.BigEndian.Uint32(data[16:20]))
		h := int(binary.BigEndian.Uint32(data[20:24]))
		if w > 0 && h > 0 {
			return w, h
		}
		return 0, 0
	}

	// GIF: logical screen descriptor right after "GIF8".
	if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x38 {
		w := int(binary.LittleEndian.Uint16(data[6:8]))
		h := int(binary.LittleEndian.Uint16(data[8:10]))
		if w > 0 && h > 0 {
			return w, h
		}
		return 0, 0
	}

	// JPEG: scan markers for a start-of-frame segment.
	if data[0] == 0xff && data[1] == 0xd8 {
		offset := 2
		for offset+9 < len(data) {
			if data[offset] != 0xff {
				break
			}
			marker := data[offset+1]
			size := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))

			if isSOFMarker(marker) && offset+8 < len(data) {
				h := int(binary.BigEndian.Uint16(data[offset+5 : offset+7]))
				w := int(binary.BigEndian.Uint16(data[offset+7 : offset+9]))
				if w > 0 && h > 0 {
					return w, h
				}
			}

			if size < 2 {
				break
			}
			offset += 2 + size
		}
	}

	return 0, 0
}

// isSOFMarker reports whether a JPEG marker is a start-of-frame segment that
// carries dimensions (SOF0-SOF15 minus DHT/DAC/RST gaps).
func isSOFMarker(marker byte) bool {
	switch marker {
	case 0xc0, 0xc1, 0xc2, 0xc3, 0xc5, 0xc6, 0xc7, 0xc9, 0xca, 0xcb, 0xcd, 0xce, 0xcf:
		return true
	}
	return false
}
