package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jwhandley/railcsa/model"
)

// msnHeaderMarker appears on the MSN header row; lines above the
// first data row carry it as a substring rather than a fixed column.
const msnHeaderMarker = "FILE-SPEC=05"

// ParseMSN reads the master station names file: one fixed-width
// record per station, giving its name, TIPLOC, CRS code and minimum
// change time. Comment lines (leading '/') and the header are
// skipped; the alias section that follows the station records (lines
// starting with 'L') ends the scan.
func ParseMSN(data io.Reader) ([]model.Stop, error) {
	scanner := bufio.NewScanner(data)

	stops := []model.Stop{}
	seen := map[model.StopId]bool{}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.HasPrefix(line, "/") || strings.Contains(line, msnHeaderMarker) {
			continue
		}
		if strings.HasPrefix(line, "L") {
			break
		}
		if len(line) < 65 {
			return nil, fmt.Errorf("msn line %d: too short (%d bytes)", lineNo, len(line))
		}

		name := strings.TrimSpace(line[5:31])
		tiploc := model.StopId(strings.TrimSpace(line[36:43]))
		crs := model.CRS(line[49:52])

		if tiploc == "" {
			return nil, fmt.Errorf("msn line %d: empty tiploc", lineNo)
		}
		if seen[tiploc] {
			return nil, fmt.Errorf("msn line %d: repeated tiploc '%s'", lineNo, tiploc)
		}
		seen[tiploc] = true

		minChangeTime, err := strconv.Atoi(line[64:65])
		if err != nil {
			return nil, fmt.Errorf("msn line %d: invalid min change time: %w", lineNo, err)
		}

		stops = append(stops, model.Stop{
			ID:            tiploc,
			Name:          name,
			CRS:           crs,
			MinChangeTime: minChangeTime,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading msn: %w", err)
	}

	return stops, nil
}
