package permissions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCoversEveryNameOnEveryOS(t *testing.T) {
	prefixes := map[OS]string{IOS: "ios.permission.", Android: "android.permission."}
	for _, os := range []OS{IOS, Android} {
		for _, name := range Names() {
			id, ok := Lookup(os, name)
			require.True(t, ok, "%s/%s missing", os, name)
			assert.NotEmpty(t, id)
			assert.True(t, strings.HasPrefix(string(id), prefixes[os]), "%s/%s = %q", os, name, id)
		}
	}
}

func TestLookupTable(t *testing.T) {
	tests := []struct {
		os   OS
		name Name
		want ID
	}{
		{IOS, Location, "ios.permission.LOCATION_WHEN_IN_USE"},
		{IOS, Camera, "ios.permission.CAMERA"},
		{IOS, Photo, "ios.permission.PHOTO_LIBRARY"},
		{IOS, Microphone, "ios.permission.MICROPHONE"},
		{IOS, Bluetooth, "ios.permission.BLUETOOTH_PERIPHERAL"},
		{Android, Location, "android.permission.ACCESS_FINE_LOCATION"},
		{Android, Camera, "android.permission.CAMERA"},
		{Android, Photo, "android.permission.WRITE_EXTERNAL_STORAGE"},
		{Android, Microphone, "android.permission.RECORD_AUDIO"},
		{Android, Bluetooth, "android.permission.BLUETOOTH_CONNECT"},
	}
	for _, tt := range tests {
		t.Run(tt.os.String()+"/"+string(tt.name), func(t *testing.T) {
			got, ok := Lookup(tt.os, tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup(IOS, Name("CONTACTS"))
	assert.False(t, ok)

	_, ok = Lookup(OS(7), Camera)
	assert.False(t, ok)

	assert.Equal(t, ID(""), IDFor(Name("CONTACTS")))
}

func TestCatalogIsACopy(t *testing.T) {
	c := Catalog(Android)
	require.Len(t, c, len(Names()))
	c[Camera] = "tampered"

	id, _ := Lookup(Android, Camera)
	assert.Equal(t, ID("android.permission.CAMERA"), id)
}

func TestNamesOrderAndValidity(t *testing.T) {
	assert.Equal(t, []Name{Location, Camera, Photo, Microphone, Bluetooth}, Names())
	for _, n := range Names() {
		assert.True(t, n.Valid())
	}
	assert.False(t, Name("SMS").Valid())
}

func TestParseOS(t *testing.T) {
	os, err := ParseOS("iOS")
	require.NoError(t, err)
	assert.Equal(t, IOS, os)

	os, err = ParseOS(" android ")
	require.NoError(t, err)
	assert.Equal(t, Android, os)

	_, err = ParseOS("windows")
	assert.ErrorIs(t, err, ErrUnknownOS)
}

func TestOSForGOOS(t *testing.T) {
	assert.Equal(t, IOS, osForGOOS("ios"))
	assert.Equal(t, Android, osForGOOS("android"))
	assert.Equal(t, Android, osForGOOS("linux"))
}

func TestIDForUsesCurrentOS(t *testing.T) {
	want, _ := Lookup(CurrentOS(), Microphone)
	assert.Equal(t, want, IDFor(Microphone))
	assert.Equal(t, CurrentOS(), CurrentOS())
}

func TestUsageDescriptionKeys(t *testing.T) {
	for _, n := range Names() {
		assert.NotEmpty(t, UsageDescriptionKeys(n), n)
	}
	assert.Equal(t, []string{"NSCameraUsageDescription"}, UsageDescriptionKeys(Camera))
	assert.Empty(t, UsageDescriptionKeys(Name("SMS")))
}
