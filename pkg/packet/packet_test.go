package packet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Schemas used across the package tests, loosely modeled on allocation
// exchange traffic: project requests, account requests and their notify
// replies.
func testSchemas() (rpc, npc, rac, nac, dac *Schema) {
	rpc = &Schema{
		Type:            "request_project",
		Required:        []string{"GrantNumber", "StartDate", "EndDate", "PfosNumber"},
		Allowed:         []string{"Abstract", "ResourceList"},
		ExpectedReplies: []string{"notify_project"},
	}
	npc = &Schema{
		Type:     "notify_project",
		Required: []string{"ProjectID"},
		Allowed:  []string{"ServiceUnitsAllocated"},
	}
	rac = &Schema{
		Type:            "request_account",
		Required:        []string{"ProjectID", "UserFirstName", "UserLastName"},
		Allowed:         []string{"UserEmail"},
		ExpectedReplies: []string{"notify_account", "data_account"},
	}
	nac = &Schema{Type: "notify_account", Required: []string{"ProjectID", "UserLogin"}}
	dac = &Schema{Type: "data_account", Required: []string{"ProjectID"}}
	return
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	rpc, npc, rac, nac, dac := testSchemas()
	reg, err := NewRegistry(rpc, npc, rac, nac, dac)
	require.NoError(t, err)
	return reg
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestNewPacketInitializesRequiredKeys(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()

	p, err := rpc.New(Config{Clock: fixedClock})
	require.NoError(t, err)

	required := p.RequiredFields()
	assert.Len(t, required, len(rpc.Required))
	for _, name := range rpc.Required {
		v, present := required[name]
		assert.True(t, present, "required key %q must exist", name)
		assert.Nil(t, v, "required key %q must start unset", name)
	}
	assert.Empty(t, p.AllowedFields())
	assert.Empty(t, p.ExtensionFields())
}

func TestSetFieldRoutesByClass(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()
	p, err := rpc.New(Config{Clock: fixedClock})
	require.NoError(t, err)

	require.NoError(t, p.SetField("GrantNumber", "ABC-123"))
	require.NoError(t, p.SetField("Abstract", "compute time for ocean models"))
	require.NoError(t, p.SetField("SitePersonID", "u-778"))

	assert.Equal(t, "ABC-123", p.RequiredFields()["GrantNumber"])
	assert.Equal(t, "compute time for ocean models", p.AllowedFields()["Abstract"])
	assert.Equal(t, "u-778", p.ExtensionFields()["SitePersonID"])

	// Declared names never leak into the extension store.
	_, inExt := p.ExtensionFields()["GrantNumber"]
	assert.False(t, inExt)
}

func TestDateFieldParsedOnSet(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()
	p, err := rpc.New(Config{Clock: fixedClock})
	require.NoError(t, err)

	require.NoError(t, p.SetField("StartDate", "2026-04-01T00:00:00Z"))
	v, ok := p.Field("StartDate")
	require.True(t, ok)
	ts, isTime := v.(time.Time)
	require.True(t, isTime, "date-named field must be stored parsed, got %T", v)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), ts)

	// Plain date form is accepted too.
	require.NoError(t, p.SetField("EndDate", "2026-10-01"))
	v, _ = p.Field("EndDate")
	_, isTime = v.(time.Time)
	assert.True(t, isTime)

	err = p.SetField("StartDate", "not a date")
	require.Error(t, err)
	assert.True(t, IsInvalidData(err))
}

func TestDateConventionAppliesToConstruction(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()
	p, err := rpc.New(Config{
		Clock:  fixedClock,
		Fields: map[string]any{"StartDate": "2026-04-01T00:00:00Z"},
	})
	require.NoError(t, err)

	v, _ := p.Field("StartDate")
	_, isTime := v.(time.Time)
	assert.True(t, isTime)

	_, err = rpc.New(Config{
		Clock:  fixedClock,
		Fields: map[string]any{"EndDate": "nonsense"},
	})
	require.Error(t, err)
	assert.True(t, IsInvalidData(err))
}

func TestResetRequiredFieldKeepsKey(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()
	p, _ := rpc.New(Config{Clock: fixedClock})

	_ = p.SetField("GrantNumber", "ABC-123")
	p.ResetField("GrantNumber")

	v, present := p.RequiredFields()["GrantNumber"]
	if !present {
		t.Fatal("reset must keep the required key")
	}
	if v != nil {
		t.Fatalf("reset must clear the value, got %v", v)
	}

	_ = p.SetField("Abstract", "text")
	p.ResetField("Abstract")
	if _, present := p.AllowedFields()["Abstract"]; present {
		t.Fatal("reset must remove an allowed entry")
	}
}

func TestExtensionSeedIsCopiedNotAliased(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()
	seed := map[string]any{"LocalFund": "F-9"}

	p1, err := rpc.New(Config{Clock: fixedClock, Extensions: seed})
	require.NoError(t, err)
	p2, err := rpc.New(Config{Clock: fixedClock, Extensions: seed})
	require.NoError(t, err)

	require.NoError(t, p1.SetField("OnlyOnFirst", 1))
	assert.NotContains(t, p2.ExtensionFields(), "OnlyOnFirst")
	assert.NotContains(t, seed, "OnlyOnFirst")
	assert.Equal(t, "F-9", p2.ExtensionFields()["LocalFund"])
}

func TestExtensionSeedRoutesDeclaredNames(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()
	p, err := rpc.New(Config{
		Clock:      fixedClock,
		Extensions: map[string]any{"GrantNumber": "ABC-123", "LocalFund": "F-9"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC-123", p.RequiredFields()["GrantNumber"])
	assert.NotContains(t, p.ExtensionFields(), "GrantNumber")
	assert.Equal(t, "F-9", p.ExtensionFields()["LocalFund"])
}

func TestTimestampDefaultsToClock(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()

	p, err := rpc.New(Config{Clock: fixedClock})
	require.NoError(t, err)
	assert.True(t, p.Timestamp().Equal(fixedClock()))

	explicit := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p, err = rpc.New(Config{Clock: fixedClock, Timestamp: explicit})
	require.NoError(t, err)
	assert.True(t, p.Timestamp().Equal(explicit))
}

func TestEnsurePacketID(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()
	p, _ := rpc.New(Config{Clock: fixedClock})

	assert.Empty(t, p.PacketID())
	id := p.EnsurePacketID()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, p.EnsurePacketID(), "second call must not reassign")

	p2, _ := rpc.New(Config{Clock: fixedClock, PacketID: "pkt-7"})
	assert.Equal(t, "pkt-7", p2.EnsurePacketID())
}

func TestFieldNamesOrder(t *testing.T) {
	rpc, _, _, _, _ := testSchemas()
	p, _ := rpc.New(Config{Clock: fixedClock})
	_ = p.SetField("StartDate", "2026-04-01")
	_ = p.SetField("GrantNumber", "ABC-123")
	_ = p.SetField("ResourceList", []string{"cluster.site.org"})
	_ = p.SetField("Zebra", 1)
	_ = p.SetField("Alpha", 2)

	assert.Equal(t,
		[]string{"GrantNumber", "StartDate", "ResourceList", "Alpha", "Zebra"},
		p.FieldNames())
}
