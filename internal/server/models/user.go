package models

// User is a stored credential record. The core only ever reads it;
// provisioning happens through registryctl.
//
// Password holds either a plaintext secret (legacy records) or a bcrypt
// hash; auth.VerifyPassword handles both.
type User struct {
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"`
	Username string `bson:"username" json:"username"`
	Role     string `bson:"role" json:"role"`
}
