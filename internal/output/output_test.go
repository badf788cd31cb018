package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"vboxctl/internal/vminfo"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestListTable(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &bytes.Buffer{})

	p.ListHeader()
	p.ListRow("web", "running", "Ubuntu_64")

	assert.Equal(t,
		"Name                           State    OS Type\n"+
			"web                            running  Ubuntu_64\n",
		out.String())
}

func TestFields(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &bytes.Buffer{})

	p.Fields([]Field{{Label: "Name", Value: "web"}, {Label: "RDP Off"}})

	assert.Equal(t, "Name            web\nRDP Off         \n", out.String())
}

func TestError(t *testing.T) {
	var errOut bytes.Buffer
	p := NewPrinter(&bytes.Buffer{}, &errOut)

	p.Error(errors.New("no machine matches"))

	assert.Equal(t, "Error: no machine matches\n", errOut.String())
}

func TestRecordYAMLKeepsOrder(t *testing.T) {
	record := vminfo.Parse("name=\"web\"\nmemory=2048\nVMState=\"running\"\n")

	var out bytes.Buffer
	require.NoError(t, NewPrinter(&out, &bytes.Buffer{}).Record(record, "yaml"))

	assert.Equal(t, "name: web\nmemory: \"2048\"\nVMState: running\n", out.String())
}

func TestRecordJSON(t *testing.T) {
	record := vminfo.Parse("name=\"web\"\nmemory=2048\n")

	var out bytes.Buffer
	require.NoError(t, NewPrinter(&out, &bytes.Buffer{}).Record(record, "json"))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, map[string]string{"name": "web", "memory": "2048"}, decoded)
}

func TestRecordUnknownFormat(t *testing.T) {
	record := vminfo.Parse(`name="web"`)

	assert.Error(t, NewPrinter(&bytes.Buffer{}, &bytes.Buffer{}).Record(record, "xml"))
}
