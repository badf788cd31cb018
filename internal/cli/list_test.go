package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListAll(t *testing.T) {
	h := newHarness(t).
		showInfo(webID, "name=\"web\"\nVMState=\"running\"\nostype=\"Ubuntu_64\"\n").
		showInfo(dbID, "name=\"db\"\nVMState=\"poweroff\"\nostype=\"Debian_64\"\n")

	code := h.run("list")

	assert.Equal(t, 0, code)
	assert.Equal(t,
		"Name                           State    OS Type\n"+
			"web                            running  Ubuntu_64\n"+
			"db                             poweroff Debian_64\n",
		h.stdout.String())
}

func TestListFiltered(t *testing.T) {
	h := newHarness(t).
		showInfo(dbID, "name=\"db\"\nVMState=\"poweroff\"\nostype=\"Debian_64\"\n")

	code := h.run("list", "^D")

	assert.Equal(t, 0, code)
	assert.Contains(t, h.stdout.String(), "db ")
	assert.NotContains(t, h.stdout.String(), "web")
	assert.False(t, h.client.Called("showvminfo "+webID))
}

func TestListNoMatchPrintsHeaderOnly(t *testing.T) {
	h := newHarness(t)

	code := h.run("list", "nothing-like-this")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Name                           State    OS Type\n", h.stdout.String())
}

func TestListSurvivesUnreadableMachine(t *testing.T) {
	h := newHarness(t).
		showInfo(webID, "name=\"web\"\nVMState=\"running\"\nostype=\"Ubuntu_64\"\n")
	h.client.Fail("showvminfo "+dbID+" --machinereadable", "VBOX_E_OBJECT_NOT_FOUND")

	code := h.run("list")

	assert.Equal(t, 0, code)
	assert.Contains(t, h.stdout.String(), "web                            running  Ubuntu_64\n")
	assert.Contains(t, h.stdout.String(), "db                             unknown  \n")
}

func TestListPlatformFailure(t *testing.T) {
	h := newHarness(t)
	h.client.Fail("list vms", "VBoxManage: error: could not connect")

	code := h.run("list")

	assert.Equal(t, 1, code)
	assert.Contains(t, h.stderr.String(), "could not connect")
}
