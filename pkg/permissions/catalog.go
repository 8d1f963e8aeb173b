package permissions

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
)

// Name is a platform-independent permission name.
type Name string

// Logical permissions supported on both platforms.
const (
	Location   Name = "LOCATION"
	Camera     Name = "CAMERA"
	Photo      Name = "PHOTO"
	Microphone Name = "MICROPHONE"
	Bluetooth  Name = "BLUETOOTH"
)

var names = []Name{Location, Camera, Photo, Microphone, Bluetooth}

// Names returns every logical permission in catalog order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

// Valid reports whether n is one of the catalog's logical permissions.
func (n Name) Valid() bool {
	_, ok := catalog[IOS][n]
	return ok
}

// ID is the identifier a platform's permission subsystem expects, e.g.
// "android.permission.CAMERA".
type ID string

// OS selects a column of the catalog.
type OS int

const (
	IOS OS = iota
	Android
)

// ErrUnknownOS is returned by ParseOS for names other than ios and android.
var ErrUnknownOS = errors.New("permissions: unknown platform")

func (o OS) String() string {
	switch o {
	case IOS:
		return "ios"
	case Android:
		return "android"
	default:
		return fmt.Sprintf("OS(%d)", int(o))
	}
}

// ParseOS converts "ios" or "android" (any case) to an OS.
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ios":
		return IOS, nil
	case "android":
		return Android, nil
	default:
		return 0, fmt.Errorf("%w %q (use ios or android)", ErrUnknownOS, s)
	}
}

var catalog = [...]map[Name]ID{
	IOS: {
		Location:   "ios.permission.LOCATION_WHEN_IN_USE",
		Camera:     "ios.permission.CAMERA",
		Photo:      "ios.permission.PHOTO_LIBRARY",
		Microphone: "ios.permission.MICROPHONE",
		Bluetooth:  "ios.permission.BLUETOOTH_PERIPHERAL",
	},
	Android: {
		Location:   "android.permission.ACCESS_FINE_LOCATION",
		Camera:     "android.permission.CAMERA",
		Photo:      "android.permission.WRITE_EXTERNAL_STORAGE",
		Microphone: "android.permission.RECORD_AUDIO",
		Bluetooth:  "android.permission.BLUETOOTH_CONNECT",
	},
}

// Info.plist keys that must carry a usage string before iOS will show the
// dialog for each permission.
var usageDescriptionKeys = map[Name][]string{
	Location:   {"NSLocationWhenInUseUsageDescription"},
	Camera:     {"NSCameraUsageDescription"},
	Photo:      {"NSPhotoLibraryUsageDescription"},
	Microphone: {"NSMicrophoneUsageDescription"},
	Bluetooth:  {"NSBluetoothAlwaysUsageDescription", "NSBluetoothPeripheralUsageDescription"},
}

// Lookup returns the identifier for name on os.
func Lookup(os OS, name Name) (ID, bool) {
	if os < IOS || os > Android {
		return "", false
	}
	id, ok := catalog[os][name]
	return id, ok
}

// Catalog returns a copy of the identifiers for os.
func Catalog(os OS) map[Name]ID {
	out := make(map[Name]ID, len(names))
	for _, n := range names {
		if id, ok := Lookup(os, n); ok {
			out[n] = id
		}
	}
	return out
}

// UsageDescriptionKeys returns the Info.plist keys iOS requires for name.
func UsageDescriptionKeys(name Name) []string {
	keys := usageDescriptionKeys[name]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

var currentOS = sync.OnceValue(func() OS {
	return osForGOOS(runtime.GOOS)
})

func osForGOOS(goos string) OS {
	if goos == "ios" {
		return IOS
	}
	return Android
}

// CurrentOS returns the platform the process runs on. It is resolved once;
// anything other than iOS uses the Android column.
func CurrentOS() OS {
	return currentOS()
}

// IDFor returns the identifier for name on the current platform, or ""
// when name is not in the catalog.
func IDFor(name Name) ID {
	id, _ := Lookup(CurrentOS(), name)
	return id
}
