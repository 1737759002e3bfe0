package model

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"reflect"
	"sort"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"github.com/nlplab-oss/ccgchart/ccgerr"
)

// weightsMagic identifies a compiled weight-table file.
var weightsMagic = [4]byte{'C', 'C', 'G', 'W'}

// weightsHeader is the fixed-size map of a compiled weight-table file: a
// magic number followed by the count of (featureID, weight) records that
// immediately follow it, sorted ascending by featureID. Modeled on
// SteosMorphy's analyzer.Header, which plays the same "here is where
// everything else in the file lives" role for its DAWG dictionary.
type weightsHeader struct {
	Magic       [4]byte
	RecordCount int64
	DepNNWeight float64
}

// weightRecord is one flat (featureID, weight) pair as stored on disk.
type weightRecord struct {
	FeatureID int64
	Weight    float64
}

// MmapWeights is a Weights implementation that zero-copy loads a flat
// binary file of feature weights via mmap, the way SteosMorphy's
// analyzer.go zero-copy loads its morphological dictionary: the file is
// mapped once, a raw []weightRecord is carved out of the mapped bytes with
// no per-record copy, and lookups binary-search that slice.
type MmapWeights struct {
	file    mmap.MMap
	records []weightRecord
	depNNW  float64
}

// OpenMmapWeights opens and maps a compiled weight-table file.
func OpenMmapWeights(path string) (*MmapWeights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ccgerr.Wrap(ccgerr.Collaborator, fmt.Errorf("model: cannot open weights file %s: %w", path, err))
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, ccgerr.Wrap(ccgerr.Collaborator, fmt.Errorf("model: cannot mmap weights file %s: %w", path, err))
	}

	var hdr weightsHeader
	hdrSize := int(unsafe.Sizeof(hdr))
	if len(m) < hdrSize {
		_ = m.Unmap()
		return nil, ccgerr.Wrap(ccgerr.Collaborator, fmt.Errorf("model: weights file %s is smaller than its header", path))
	}
	if err := binary.Read(bytes.NewReader(m[:hdrSize]), binary.LittleEndian, &hdr); err != nil {
		_ = m.Unmap()
		return nil, ccgerr.Wrap(ccgerr.Collaborator, fmt.Errorf("model: cannot read weights header: %w", err))
	}
	if hdr.Magic != weightsMagic {
		_ = m.Unmap()
		return nil, ccgerr.Wrap(ccgerr.Collaborator, fmt.Errorf("model: %s is not a compiled weights file", path))
	}

	body := m[hdrSize:]
	records := bytesToSlice[weightRecord](body)
	if int64(len(records)) < hdr.RecordCount {
		_ = m.Unmap()
		return nil, ccgerr.Wrap(ccgerr.Collaborator, fmt.Errorf("model: weights file %s is truncated: want %d records, have %d", path, hdr.RecordCount, len(records)))
	}
	records = records[:hdr.RecordCount]

	return &MmapWeights{
		file:    m,
		records: records,
		depNNW:  hdr.DepNNWeight,
	}, nil
}

// bytesToSlice reinterprets a byte slice as a []T without copying,
// mirroring SteosMorphy's own bytesToSlice helper.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	header := reflect.SliceHeader{
		Data: uintptr(unsafe.Pointer(&b[0])),
		Len:  len(b) / size,
		Cap:  len(b) / size,
	}
	return *(*[]T)(unsafe.Pointer(&header))
}

// GetWeight returns the weight for featureID, or 0 if absent.
func (w *MmapWeights) GetWeight(featureID int) float64 {
	fid := int64(featureID)
	i := sort.Search(len(w.records), func(i int) bool { return w.records[i].FeatureID >= fid })
	if i < len(w.records) && w.records[i].FeatureID == fid {
		return w.records[i].Weight
	}
	return 0
}

// GetDepNNWeight returns the neural mixing coefficient stored in the file's
// header.
func (w *MmapWeights) GetDepNNWeight() float64 {
	return w.depNNW
}

// Close unmaps the underlying file. Safe to call once after the weights
// table is no longer needed.
func (w *MmapWeights) Close() error {
	return w.file.Unmap()
}

// Stats returns the minimum, maximum, and sum of every stored weight, plus
// the record count, for reporting purposes (e.g. `ccgchart describe`).
func (w *MmapWeights) Stats() (min, max, sum float64, count int) {
	if len(w.records) == 0 {
		return 0, 0, 0, 0
	}
	min, max = w.records[0].Weight, w.records[0].Weight
	for _, r := range w.records {
		if r.Weight < min {
			min = r.Weight
		}
		if r.Weight > max {
			max = r.Weight
		}
		sum += r.Weight
	}
	return min, max, sum, len(w.records)
}

// MapWeights is an in-memory Weights implementation, used for tests and
// small hand-built configurations where mapping a file is unnecessary
// overhead.
type MapWeights struct {
	W      map[int]float64
	DepNNW float64
}

// NewMapWeights builds a MapWeights from a plain map.
func NewMapWeights(w map[int]float64, depNNWeight float64) *MapWeights {
	return &MapWeights{W: w, DepNNW: depNNWeight}
}

func (w *MapWeights) GetWeight(featureID int) float64 {
	return w.W[featureID]
}

func (w *MapWeights) GetDepNNWeight() float64 {
	return w.DepNNW
}
