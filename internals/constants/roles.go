package constants

import "fmt"

// Role yang dikenal token
const (
	RoleAdmin   = "admin"   // tata usaha / bendahara sekolah
	RoleStudent = "student" // akun siswa / wali
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}
