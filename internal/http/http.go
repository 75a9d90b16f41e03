package http

import (
	"bytes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
	g "maragu.dev/gomponents"

	mdb "github.com/liondandelion/larets/internal/db"
	mhtmx "github.com/liondandelion/larets/internal/html/htmx"
	mpages "github.com/liondandelion/larets/internal/html/pages"
)

type LaretsError struct {
	Where  string
	What   string
	Err    error
	Status int
}

type LaretsHandler func(http.ResponseWriter, *http.Request) *LaretsError

func (e *LaretsError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Where, e.What, e.Err)
}

func (fn LaretsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := fn(w, r); err != nil {
		log.Printf("Error: %v", err.Error())
		switch err.Status {
		default:
			http.Error(w, http.StatusText(err.Status), err.Status)
		}
	}
}

func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer: no URL params allowed")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, r)
	})
}

func render(w http.ResponseWriter, where string, node g.Node) *LaretsError {
	if err := node.Render(w); err != nil {
		return &LaretsError{where, "failed to render", err, http.StatusInternalServerError}
	}
	return nil
}

func Home(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())
		if !data.IsAuthenticated {
			return render(w, "Home", mpages.Home(data, nil))
		}

		secrets, err := db.SecretList(data.Username)
		if err != nil {
			return &LaretsError{"Home", "failed to list secrets", err, http.StatusInternalServerError}
		}
		return render(w, "Home", mpages.Home(data, secrets))
	})
}

func Register(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())
		return render(w, "Register", mpages.Register(data))
	})
}

func RegisterPost(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		r.ParseForm()
		username := r.PostFormValue("username")
		password := []byte(r.PostFormValue("password"))

		if !UsernameIsValid(username) || !PasswordIsValid(string(password)) {
			return render(w, "RegisterPost", mhtmx.Error("errorInvalid", "Invalid username or password"))
		}

		hash, _ := HashPassword(password)
		isAdmin := false

		err := db.UserInsert(username, hash, isAdmin)
		if err != nil {
			return &LaretsError{"RegisterPost", "failed to insert user", err, http.StatusInternalServerError}
		}

		data := db.UserSessionDataGet(r.Context())
		data.Username = username
		data.IsAuthenticated = true
		data.IsAdmin = isAdmin

		db.UserTokenRenew(r.Context())
		db.UserSessionDataSet(data, r.Context())

		HTMXRedirect(w, "/")
		return nil
	})
}

func RegisterExists(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		r.ParseForm()
		username := r.PostFormValue("username")

		exists, err := db.UserExists(username)
		if err != nil {
			return &LaretsError{"RegisterExists", "failed to query or scan db", err, http.StatusInternalServerError}
		}

		message := ""
		if exists {
			message = "This user already exists"
		}
		return render(w, "RegisterExists", mhtmx.Error("errorExists", message))
	})
}

func Login(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())
		if data.IsAuthenticated {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return nil
		}
		return render(w, "Login", mpages.Login(data))
	})
}

func LoginPost(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		r.ParseForm()
		username := r.PostFormValue("username")
		password := []byte(r.PostFormValue("password"))

		data := db.UserSessionDataGet(r.Context())

		exists, err := db.UserExists(username)
		if err != nil {
			return &LaretsError{"LoginPost", "failed to query or scan db", err, http.StatusInternalServerError}
		}
		if !exists {
			return render(w, "LoginPost", mhtmx.Error("errorInvalid", "Invalid username"))
		}

		passwordHash, err := db.UserPasswordHashGet(username)
		if err != nil {
			return &LaretsError{"LoginPost", "failed to query or scan db", err, http.StatusInternalServerError}
		}

		err = bcrypt.CompareHashAndPassword(passwordHash, password)
		if err != nil {
			return render(w, "LoginPost", mhtmx.Error("errorInvalid", "Invalid password"))
		}

		data.Username = username
		db.UserSessionDataSet(data, r.Context())

		data.IsOTPEnabled, err = db.UserIsOTPEnabled(username)
		if err != nil {
			return &LaretsError{"LoginPost", "failed to query or scan db", err, http.StatusInternalServerError}
		}

		if data.IsOTPEnabled {
			return render(w, "LoginPost", mhtmx.FormOTP("/login/otp"))
		}

		db.UserTokenRenew(r.Context())
		data.IsAuthenticated = true
		db.UserSessionDataSet(data, r.Context())

		HTMXRedirect(w, "/")
		return nil
	})
}

func LoginOTP(db mdb.DB, gcm cipher.AEAD) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		r.ParseForm()
		otpCode := r.PostFormValue("otpCode")
		data := db.UserSessionDataGet(r.Context())

		valid, err := OTPValidate(data.Username, otpCode, db, gcm)
		if err != nil {
			return &LaretsError{"LoginOTP", "failed to validate otp", err, http.StatusInternalServerError}
		}
		if !valid {
			return render(w, "LoginOTP", mhtmx.Error("errorInvalid", "The code is invalid"))
		}

		db.UserTokenRenew(r.Context())
		data.IsAuthenticated = true
		db.UserSessionDataSet(data, r.Context())

		HTMXRedirect(w, "/")
		return nil
	})
}

func Logout(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		db.UserTokenRenew(r.Context())
		db.UserSessionDataDestroy(r.Context())

		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil
	})
}

func User(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())
		return render(w, "User", mpages.User(data))
	})
}

func PasswordChange(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())
		return render(w, "PasswordChange", mpages.PasswordChange(data))
	})
}

func PasswordChangePost(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		r.ParseForm()
		oldPassword := []byte(r.PostFormValue("oldPassword"))
		newPassword := []byte(r.PostFormValue("newPassword"))
		data := db.UserSessionDataGet(r.Context())

		oldHash, err := db.UserPasswordHashGet(data.Username)
		if err != nil {
			return &LaretsError{"PasswordChangePost", "failed to get old hash", err, http.StatusInternalServerError}
		}

		err = bcrypt.CompareHashAndPassword(oldHash, oldPassword)
		if err != nil {
			return render(w, "PasswordChangePost", mhtmx.Error("errorWrong", "Old password is wrong"))
		}

		if !PasswordIsValid(string(newPassword)) {
			return render(w, "PasswordChangePost", mhtmx.Error("errorWrong", "New password is too short"))
		}

		newHash, _ := HashPassword(newPassword)
		err = db.UserPasswordHashSet(data.Username, newHash)
		if err != nil {
			return &LaretsError{"PasswordChangePost", "failed to update", err, http.StatusInternalServerError}
		}

		db.UserTokenRenew(r.Context())

		HTMXRedirect(w, "/")
		return nil
	})
}

func UsersTable(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())

		users, err := db.UserTableGet()
		if err != nil {
			return &LaretsError{"UsersTable", "failed to collect rows", err, http.StatusInternalServerError}
		}
		return render(w, "UsersTable", mpages.UserTable(data, users))
	})
}

func OTPEnable(db mdb.DB, gcm cipher.AEAD) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())

		totpOpts := totp.GenerateOpts{
			Issuer:      "Larets",
			AccountName: data.Username,
		}
		key, err := totp.Generate(totpOpts)
		if err != nil {
			return &LaretsError{"OTPEnable", "failed to generate key", err, http.StatusInternalServerError}
		}

		var buf bytes.Buffer
		var imgBase64 string
		imageWidth, imageHeight := 200, 200
		img, err := key.Image(imageWidth, imageHeight)
		if err != nil {
			log.Printf("OTPEnable: failed to generate image: %v", err)
		} else {
			png.Encode(&buf, img)
			imgBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
		}

		secretEnc, err := Seal(gcm, []byte(key.Secret()))
		if err != nil {
			return &LaretsError{"OTPEnable", "failed to seal secret", err, http.StatusInternalServerError}
		}
		db.SessionOTPSecretPut(secretEnc, r.Context())

		return render(w, "OTPEnable", mpages.OTPEnable(data, key.Issuer(), key.AccountName(), key.Secret(), imgBase64))
	})
}

func OTPEnablePost(db mdb.DB, gcm cipher.AEAD) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		r.ParseForm()
		otpCode := r.PostFormValue("otpCode")
		otpSecretEnc := db.SessionOTPSecretGet(r.Context())
		data := db.UserSessionDataGet(r.Context())

		otpSecretB, err := Open(gcm, otpSecretEnc)
		if err != nil {
			return &LaretsError{"OTPEnablePost", "failed to decrypt", err, http.StatusInternalServerError}
		}

		if !totp.Validate(otpCode, string(otpSecretB)) {
			return render(w, "OTPEnablePost", mhtmx.Error("errorInvalid", "The code is invalid, try enrolling again in your app"))
		}

		err = db.UserOTPSecretInsert(data.Username, otpSecretEnc)
		if err != nil {
			return &LaretsError{"OTPEnablePost", "failed to insert otp", err, http.StatusInternalServerError}
		}

		data.IsOTPEnabled = true

		db.UserTokenRenew(r.Context())
		db.SessionOTPSecretRemove(r.Context())
		db.UserSessionDataSet(data, r.Context())

		HTMXRedirect(w, "/")
		return nil
	})
}

func OTPDisable(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())
		return render(w, "OTPDisable", mpages.OTPDisable(data))
	})
}

func OTPDisablePost(db mdb.DB, gcm cipher.AEAD) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		r.ParseForm()
		otpCode := r.PostFormValue("otpCode")
		data := db.UserSessionDataGet(r.Context())

		valid, err := OTPValidate(data.Username, otpCode, db, gcm)
		if err != nil {
			return &LaretsError{"OTPDisablePost", "failed to validate otp", err, http.StatusInternalServerError}
		}
		if !valid {
			return render(w, "OTPDisablePost", mhtmx.Error("errorInvalid", "The code is invalid"))
		}

		err = db.UserOTPSecretDelete(data.Username)
		if err != nil {
			return &LaretsError{"OTPDisablePost", "failed to delete row", err, http.StatusInternalServerError}
		}

		data.IsOTPEnabled = false

		db.UserTokenRenew(r.Context())
		db.UserSessionDataSet(data, r.Context())

		HTMXRedirect(w, "/")
		return nil
	})
}

func SecretNew(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		data := db.UserSessionDataGet(r.Context())
		return render(w, "SecretNew", mpages.SecretNew(data))
	})
}

func SecretCreate(db mdb.DB, gcm cipher.AEAD) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		r.ParseForm()
		name := r.PostFormValue("name")
		payload := r.PostFormValue("payload")
		data := db.UserSessionDataGet(r.Context())

		if !SecretNameIsValid(name) {
			return render(w, "SecretCreate", mhtmx.Error("errorInvalid", "Invalid secret name"))
		}

		sealed, err := Seal(gcm, []byte(payload))
		if err != nil {
			return &LaretsError{"SecretCreate", "failed to seal secret", err, http.StatusInternalServerError}
		}

		err = db.SecretInsert(data.Username, name, sealed)
		if err != nil {
			return &LaretsError{"SecretCreate", "failed to insert secret", err, http.StatusInternalServerError}
		}

		HTMXRedirect(w, "/")
		return nil
	})
}

func SecretShow(db mdb.DB, gcm cipher.AEAD) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		name := chi.URLParam(r, "name")
		data := db.UserSessionDataGet(r.Context())

		sealed, err := db.SecretGet(data.Username, name)
		if err != nil {
			return &LaretsError{"SecretShow", "failed to get secret", err, http.StatusNotFound}
		}

		payload, err := Open(gcm, sealed)
		if err != nil {
			return &LaretsError{"SecretShow", "failed to open secret", err, http.StatusInternalServerError}
		}

		return render(w, "SecretShow", mhtmx.SecretPayload(name, string(payload)))
	})
}

func SecretDelete(db mdb.DB) http.Handler {
	return LaretsHandler(func(w http.ResponseWriter, r *http.Request) *LaretsError {
		name := chi.URLParam(r, "name")
		data := db.UserSessionDataGet(r.Context())

		err := db.SecretDelete(data.Username, name)
		if err != nil {
			return &LaretsError{"SecretDelete", "failed to delete row", err, http.StatusInternalServerError}
		}

		HTMXRedirect(w, "/")
		return nil
	})
}
