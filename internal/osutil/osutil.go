package osutil

const Windows = "windows"

const FilePermission = 0o600
