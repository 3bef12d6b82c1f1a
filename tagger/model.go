package tagger

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Context holds the outcome ids and weights of one predicate.
type Context struct {
	Outcomes   []int     `json:"outcomes"`
	Parameters []float64 `json:"parameters"`
}

type EvalParameters struct {
	Params        []Context `json:"params"`
	NumOfOutcomes int       `json:"numOfOutcomes"`
}

// Model is a maximum-entropy classifier over string contexts. It is read-only
// after load and safe for concurrent Eval calls.
type Model struct {
	Probs      []float64      `json:"probs"`
	Outcomes   []string       `json:"outcomes"`
	PMap       map[string]int `json:"pmap"`
	EvalParams EvalParameters `json:"evalParams"`
}

// Eval returns the normalized outcome distribution for one feature set.
func (m Model) Eval(context []string) []float64 {
	outsums := make([]float64, len(m.Probs))
	copy(outsums, m.Probs)

	params := m.EvalParams.Params
	for _, feature := range context {
		ci, isOk := m.PMap[feature]
		if !isOk {
			continue
		}

		predParam := params[ci]
		for ai, oid := range predParam.Outcomes {
			outsums[oid] += predParam.Parameters[ai]
		}
	}

	normal := 0.0
	for oid := 0; oid < m.EvalParams.NumOfOutcomes; oid++ {
		outsums[oid] = math.Exp(outsums[oid])
		normal += outsums[oid]
	}

	for oid := 0; oid < m.EvalParams.NumOfOutcomes; oid++ {
		outsums[oid] /= normal
	}

	return outsums
}

// LoadModelFromFile reads a JSON model. A missing file is reported with the
// path and the fix, because the model ships separately from the binary.
func LoadModelFromFile(modelFilePath string) (Model, error) {
	var m Model
	buf, err := os.ReadFile(modelFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return m, fmt.Errorf(
				"pos model file %q does not exist: download the model artifact and set IDR_POS_MODEL_PATH to its location: %w",
				modelFilePath, err)
		}
		return m, fmt.Errorf("failed to read pos model file %q: %w", modelFilePath, err)
	}

	if err = json.Unmarshal(buf, &m); err != nil {
		return m, fmt.Errorf("failed to parse pos model file %q: %w", modelFilePath, err)
	}
	return m, nil
}
