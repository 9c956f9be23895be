package user

/* User is a reader of the shelf. Kept under internal so only this module's
 * binaries and storage backends can depend on it.
 * Value semantics: it represents data, not behavior.
 */
type User struct {
	ID   int64
	Name string
}
