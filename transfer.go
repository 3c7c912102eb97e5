package railcsa

import "github.com/jwhandley/railcsa/model"

// transfer is a resolved footpath: a fixed-time walk from one TIPLOC
// to another. Unlike model.Footpath, both ends are already TIPLOCs,
// not CRS codes — the CRS->TIPLOC resolution happens once, at build
// time.
type transfer struct {
	toStop             model.StopId
	minTransferSeconds uint32
}

// transferIndex maps a from-stop to its outgoing transfers. A stop
// with no footpaths simply has no entry; getTransfers handles that by
// returning nil rather than requiring callers to check for presence.
type transferIndex map[model.StopId][]transfer

func (idx transferIndex) getTransfers(stop model.StopId) []transfer {
	return idx[stop]
}

// buildTransferIndex resolves each footpath's CRS endpoints to a
// TIPLOC via stopsByCRS (first-seen representative per CRS) and
// groups the results by from-stop. A footpath whose either endpoint
// has no known CRS->TIPLOC mapping is silently dropped: the source
// feed enumerates footpaths for stations that may not all appear in
// the MSN file actually loaded.
func buildTransferIndex(footpaths []model.Footpath, stopsByCRS map[model.CRS]model.Stop) transferIndex {
	idx := transferIndex{}

	for _, fp := range footpaths {
		fromStop, ok := stopsByCRS[fp.FromCRS]
		if !ok {
			continue
		}
		toStop, ok := stopsByCRS[fp.ToCRS]
		if !ok {
			continue
		}

		idx[fromStop.ID] = append(idx[fromStop.ID], transfer{
			toStop:             toStop.ID,
			minTransferSeconds: fp.MinTransferSeconds,
		})
	}

	return idx
}

// buildStopsByCRS picks one representative Stop per CRS, first-seen.
// Multiple TIPLOCs can share a CRS; this is the same ambiguity the
// source feed has, and which footpath is attached to which TIPLOC in
// that case is unspecified.
func buildStopsByCRS(stops []model.Stop) map[model.CRS]model.Stop {
	byCRS := make(map[model.CRS]model.Stop, len(stops))
	for _, s := range stops {
		if s.CRS == "" {
			continue
		}
		if _, seen := byCRS[s.CRS]; seen {
			continue
		}
		byCRS[s.CRS] = s
	}
	return byCRS
}
