package vminfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const natDump = `name="my-vm"
groups="/"
ostype="Ubuntu (64-bit)"
UUID="6f2a7c1e-1d2b-4e8f-9a3c-5b6d7e8f9a0b"
CfgFile="/home/me/VirtualBox VMs/my-vm/my-vm.vbox"
memory=2048
VMState="running"
VMStateChangeTime="2024-05-01T10:00:00.000000000"
"SATA-0-0"="/home/me/VirtualBox VMs/my-vm/disk.vdi"
nic1="nat"
natnet1="nat"
Forwarding(0)="ssh,tcp,,2222,,22"
Forwarding(1)="vnc,tcp,127.0.0.1,5905,,5900"
Forwarding(2)="dns,udp,,5353,,53"
vrde="off"
description="line one\nline \"two\"\\end"
`

func TestParseReadsQuotedAndBareValues(t *testing.T) {
	record := Parse(natDump)

	assert.Equal(t, "my-vm", record.Name())
	assert.Equal(t, "6f2a7c1e-1d2b-4e8f-9a3c-5b6d7e8f9a0b", record.UUID())
	assert.Equal(t, "running", record.State())
	assert.Equal(t, "Ubuntu (64-bit)", record.OSType())
	assert.Equal(t, "nat", record.NetworkMode())
	assert.Equal(t, "2048", record.Get("memory"))
	assert.Equal(t, "/home/me/VirtualBox VMs/my-vm/disk.vdi", record.Get("SATA-0-0"))
	assert.Equal(t, "line one\nline \"two\"\\end", record.Get("description"))
	assert.False(t, record.VRDEEnabled())
}

func TestGetMissingKeyIsEmpty(t *testing.T) {
	record := Parse(`ostype="Other"`)

	assert.Equal(t, "", record.Get("name"))
	_, ok := record.Lookup("name")
	assert.False(t, ok)
}

func TestParseKeepsFirstOccurrence(t *testing.T) {
	record := Parse("name=\"first\"\nname=\"second\"\n")

	assert.Equal(t, "first", record.Get("name"))
	assert.Equal(t, []string{"name"}, record.Keys())
}

func TestParseHandlesCRLFAndBlankLines(t *testing.T) {
	record := Parse("name=\"win\"\r\n\r\nVMState=\"poweroff\"\r\n")

	assert.Equal(t, "win", record.Name())
	assert.Equal(t, "poweroff", record.State())
	assert.Equal(t, 2, record.Len())
}

func TestParseSkipsBadLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{name: "no equals", text: "name=\"ok\"\ngarbage", line: 2},
		{name: "unterminated key", text: "name=\"ok\"\n\"SATA-0-0=1", line: 2},
		{name: "empty key", text: "name=\"ok\"\n=\"x\"", line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := Parse(tt.text)

			assert.Equal(t, "ok", record.Name())
			assert.Equal(t, 1, record.Len())
			require.Len(t, record.Warnings(), 1)
			assert.Equal(t, tt.line, record.Warnings()[0].Line)
		})
	}
}

func TestParseJoinsMultiLineValue(t *testing.T) {
	record := Parse("name=\"box\"\ndescription=\"first line\nsecond line\"\nnic1=\"nat\"\nForwarding(0)=\"ssh,tcp,,2222,,22\"\n")

	assert.Equal(t, "box", record.Name())
	assert.Equal(t, "first line\nsecond line", record.Get("description"))
	assert.Equal(t, "nat", record.NetworkMode())
	port, ok := record.HostPort(22)
	assert.True(t, ok)
	assert.Equal(t, 2222, port)
	assert.Empty(t, record.Warnings())
}

func TestParseNeverClosedValueStopsAtNextKey(t *testing.T) {
	record := Parse("description=\"open\nnic1=\"nat\"\nvrde=\"on\"\n")

	assert.Equal(t, "open", record.Get("description"))
	assert.Equal(t, "nat", record.NetworkMode())
	assert.True(t, record.VRDEEnabled())
	require.Len(t, record.Warnings(), 1)
	assert.Equal(t, 1, record.Warnings()[0].Line)
}

func TestParseUnterminatedValueAtEnd(t *testing.T) {
	record := Parse(`name="oops`)

	assert.Equal(t, "oops", record.Name())
	assert.Len(t, record.Warnings(), 1)
}

func TestParseStrayQuoteRunsToLastQuote(t *testing.T) {
	record := Parse("name=\"my \"quoted\" vm\"\nVMState=\"running\"\n")

	assert.Equal(t, `my "quoted" vm`, record.Name())
	assert.Equal(t, "running", record.State())
	require.Len(t, record.Warnings(), 1)
	assert.Equal(t, 1, record.Warnings()[0].Line)
}

func TestUnknownEscapeIsKept(t *testing.T) {
	record := Parse(`CfgFile="C:\Users\me\vm.vbox"`)

	assert.Equal(t, `C:\Users\me\vm.vbox`, record.Get("CfgFile"))
}
