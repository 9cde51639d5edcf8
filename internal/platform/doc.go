// Package platform provides cross-platform filesystem primitives for the
// sync engine: symlink creation and inspection, relative link computation,
// and permission handling. On Unix it uses native symlinks directly. On
// Windows it falls back to copying with a .target sidecar when developer
// mode symlinks are unavailable.
package platform
