package urls

// WirelessDebugging is the Android guide for enabling wireless debugging
// and pairing a device with "adb pair".
const WirelessDebugging = "https://developer.android.com/tools/adb#connect-to-a-device-over-wi-fi"

// PlatformTools is the download page for Android SDK Platform-Tools,
// which ships the adb binary.
const PlatformTools = "https://developer.android.com/tools/releases/platform-tools"
