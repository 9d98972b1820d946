package schemas

import (
	"fmt"
	"strconv"
	"strings"
)

// MatchStreamSpecifier reports whether a stream matches a specifier.
// Supported forms:
//   - ""            matches any stream
//   - "N"           matches the stream with index N within its file
//   - "v" / "a"     matches any video / audio stream
//   - "v:N" / "a:N" matches the stream of that type with index N
func MatchStreamSpecifier(ist *InputStream, spec string) (bool, error) {
	if spec == "" {
		return true, nil
	}

	if idx, err := strconv.Atoi(spec); err == nil {
		if idx < 0 {
			return false, fmt.Errorf("invalid stream index %d", idx)
		}
		return ist.StreamIndex == idx, nil
	}

	typePart := spec
	indexPart := ""
	if i := strings.IndexByte(spec, ':'); i >= 0 {
		typePart, indexPart = spec[:i], spec[i+1:]
	}

	var want MediaType
	switch typePart {
	case "v", "V":
		want = MediaTypeVideo
	case "a":
		want = MediaTypeAudio
	default:
		return false, fmt.Errorf("invalid stream specifier '%s'", spec)
	}

	if ist.Type != want {
		return false, nil
	}

	if indexPart != "" {
		idx, err := strconv.Atoi(indexPart)
		if err != nil || idx < 0 {
			return false, fmt.Errorf("invalid stream specifier '%s'", spec)
		}
		return ist.StreamIndex == idx, nil
	}

	return true, nil
}
