package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jwhandley/railcsa/model"
)

// ParseALF reads the additional fixed links file: one comma-separated
// record per line, each field a MODE=KEY, FROMCRS=, TOCRS=, TIME=
// key-value pair.
func ParseALF(data io.Reader) ([]model.Footpath, error) {
	scanner := bufio.NewScanner(data)

	footpaths := []model.Footpath{}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		footpath, err := parseALFLine(line)
		if err != nil {
			return nil, fmt.Errorf("alf line %d: %w", lineNo, err)
		}
		footpaths = append(footpaths, footpath)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading alf: %w", err)
	}

	return footpaths, nil
}

func parseALFLine(line string) (model.Footpath, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return model.Footpath{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	values := map[string]string{}
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return model.Footpath{}, fmt.Errorf("field '%s' is not a K=V pair", field)
		}
		values[key] = value
	}

	mode, err := parseFootpathMode(values["MODE"])
	if err != nil {
		return model.Footpath{}, err
	}

	fromCRS, ok := values["FROMCRS"]
	if !ok || fromCRS == "" {
		return model.Footpath{}, fmt.Errorf("missing FROMCRS")
	}
	toCRS, ok := values["TOCRS"]
	if !ok || toCRS == "" {
		return model.Footpath{}, fmt.Errorf("missing TOCRS")
	}

	timeStr, ok := values["TIME"]
	if !ok {
		return model.Footpath{}, fmt.Errorf("missing TIME")
	}
	seconds, err := strconv.Atoi(timeStr)
	if err != nil {
		return model.Footpath{}, fmt.Errorf("invalid TIME '%s': %w", timeStr, err)
	}

	return model.Footpath{
		FromCRS:            model.CRS(fromCRS),
		ToCRS:              model.CRS(toCRS),
		Mode:               mode,
		MinTransferSeconds: uint32(seconds),
	}, nil
}

func parseFootpathMode(s string) (model.FootpathMode, error) {
	switch s {
	case "BUS":
		return model.ModeBus, nil
	case "TUBE":
		return model.ModeTube, nil
	case "WALK":
		return model.ModeWalk, nil
	case "FERRY":
		return model.ModeFerry, nil
	case "METRO":
		return model.ModeMetro, nil
	case "TRAM":
		return model.ModeTram, nil
	case "TRANSFER":
		return model.ModeTransfer, nil
	default:
		return 0, fmt.Errorf("invalid mode '%s'", s)
	}
}
