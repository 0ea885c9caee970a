package analysis

import (
	"path"
	"strconv"

	"github.com/golang/glog"

	"github.com/zeu5/cardmdp/core"
	"github.com/zeu5/cardmdp/util"
)

type NoOpComparator struct{}

var _ core.Comparator = &NoOpComparator{}

func (n *NoOpComparator) Compare(_ []string, _ []core.DataSet) {}

type NoOpComparatorConstructor struct{}

var _ core.ComparatorConstructor = &NoOpComparatorConstructor{}

func NewNoOpComparatorConstructor() *NoOpComparatorConstructor {
	return &NoOpComparatorConstructor{}
}

func (n *NoOpComparatorConstructor) NewComparator(_ int) core.Comparator {
	return &NoOpComparator{}
}

// JSONComparator saves every experiment's dataset, keyed by experiment name, to one file.
// Experiments that errored have a nil dataset and are left out.
type JSONComparator struct {
	savePath string
}

var _ core.Comparator = &JSONComparator{}

func NewJSONComparator(savePath string) *JSONComparator {
	return &JSONComparator{savePath: savePath}
}

func (c *JSONComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	out := make(map[string]core.DataSet)
	for i, name := range experimentNames {
		if i < len(datasets) && datasets[i] != nil {
			out[name] = datasets[i]
		}
	}
	if err := util.SaveJson(c.savePath, out); err != nil {
		glog.Errorf("Error saving %s: %v", c.savePath, err)
	}
}

// JSONComparatorConstructor writes each run to <savePath>/<run>/<fileName>.
type JSONComparatorConstructor struct {
	savePath string
	fileName string
}

var _ core.ComparatorConstructor = &JSONComparatorConstructor{}

func NewJSONComparatorConstructor(savePath, fileName string) *JSONComparatorConstructor {
	return &JSONComparatorConstructor{
		savePath: savePath,
		fileName: fileName,
	}
}

func (c *JSONComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewJSONComparator(path.Join(c.savePath, strconv.Itoa(run), c.fileName))
}
