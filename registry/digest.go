package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
)

// digestEncMode uses canonical CBOR so equal tables hash equally.
var digestEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("registry: cbor enc mode: %v", err))
	}
	digestEncMode = em
}

type unitRecord struct {
	Name    string   `cbor:"name"`
	Aliases []string `cbor:"aliases"`
	Space   string   `cbor:"space"`
	Metric  bool     `cbor:"metric"`
	Scale   float64  `cbor:"scale"`
}

func digestUnits(units []*Unit) (string, error) {
	records := make([]unitRecord, 0, len(units))
	for _, u := range units {
		aliases := append([]string(nil), u.Aliases...)
		sort.Strings(aliases)
		records = append(records, unitRecord{
			Name:    u.Name,
			Aliases: aliases,
			Space:   string(u.Space),
			Metric:  u.Metric,
			Scale:   u.Scale(),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	data, err := digestEncMode.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode unit table: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
