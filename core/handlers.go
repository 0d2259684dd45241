package core

import (
	"encoding/json"
	"errors"
	"html/template"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/itskontak/kontak/core/log"
	"github.com/itskontak/kontak/shared/datatypes"
)

// ErrMissingName reports a form submitted without a contact name.
var ErrMissingName = errors.New("You must enter a name.")

// newRouter initializes and returns a router.
func newRouter() *httprouter.Router {
	router := httprouter.New()

	// Web routes
	router.HandlerFunc("GET", "/", HIndex)

	// API routes
	router.HandlerFunc("GET", "/api/contacts.json", HAPIContacts)
	router.HandlerFunc("POST", "/api/contacts.json", HAPIContactAdd)
	router.HandlerFunc("PUT", "/api/contacts.json", HAPIContactUpdate)
	router.HandlerFunc("DELETE", "/api/contacts.json", HAPIContactDelete)
	router.GET("/api/contacts/:name", HAPIContact)
	return router
}

// HIndex presents the contact listing to the user along with any pending
// flash message from the last mutation. Refreshing the page shows no stale
// message; the flash slot drains on first read.
func HIndex(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	contacts, err := dir.List()
	if err != nil {
		writeErrorInternal(w, err)
		return
	}
	msg, _ := dir.DrainNotice(sid)
	data := struct {
		Contacts []dt.Contact
		Msg      string
	}{Contacts: contacts, Msg: msg}
	if err = tmplIndex.Execute(w, data); err != nil {
		writeErrorInternal(w, err)
	}
}

// HAPIContacts responds with every contact in the directory and drains the
// session's pending flash message into Msg.
func HAPIContacts(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	contacts, err := dir.List()
	if err != nil {
		writeErrorInternal(w, err)
		return
	}
	msg, _ := dir.DrainNotice(sid)
	resp := struct {
		Contacts []dt.Contact
		Msg      string
	}{Contacts: contacts, Msg: msg}
	writeBytes(w, resp)
}

// HAPIContact responds with a single contact looked up by name. The trailing
// .json on the path is optional.
func HAPIContact(w http.ResponseWriter, r *http.Request,
	ps httprouter.Params) {

	name := strings.TrimSuffix(ps.ByName("name"), ".json")
	contact, err := dir.Get(name)
	if errors.Is(err, dt.ErrNotFound) {
		writeErrorNotFound(w, err)
		return
	}
	if err != nil {
		writeErrorInternal(w, err)
		return
	}
	writeBytes(w, contact)
}

// HAPIContactAdd creates a contact after validating the submitted fields and
// checking the name isn't already in use.
func HAPIContactAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, err)
		return
	}
	if len(r.FormValue("Name")) == 0 {
		writeErrorBadRequest(w, ErrMissingName)
		return
	}
	sid := sessionID(w, r)
	contact := dt.Contact{
		Name:  r.FormValue("Name"),
		Email: r.FormValue("Email"),
		Phone: r.FormValue("Phone"),
	}
	id, err := dir.Add(sid, contact)
	if err != nil {
		writeOpError(w, err)
		return
	}
	resp := struct{ ID uint64 }{ID: id}
	writeBytes(w, resp)
}

// HAPIContactUpdate replaces the name, email and phone of the contact
// identified by ID. Renaming a contact onto its own current name is fine;
// renaming onto another record's name is a conflict.
func HAPIContactUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, err)
		return
	}
	if len(r.FormValue("Name")) == 0 {
		writeErrorBadRequest(w, ErrMissingName)
		return
	}
	id, err := strconv.ParseUint(r.FormValue("ID"), 10, 64)
	if err != nil {
		writeErrorBadRequest(w, errors.New("ID is not an integer"))
		return
	}
	sid := sessionID(w, r)
	contact := dt.Contact{
		Name:  r.FormValue("Name"),
		Email: r.FormValue("Email"),
		Phone: r.FormValue("Phone"),
	}
	err = dir.Edit(sid, id, r.FormValue("OldName"), contact)
	if err != nil {
		writeOpError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HAPIContactDelete removes the contact with the submitted name. Deleting a
// name with no record behind it still succeeds. ParseForm skips DELETE
// bodies, so the form body is parsed by hand; a Name query parameter also
// works.
func HAPIContactDelete(w http.ResponseWriter, r *http.Request) {
	byt, err := ioutil.ReadAll(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	form, err := url.ParseQuery(string(byt))
	if err != nil {
		writeError(w, err)
		return
	}
	name := form.Get("Name")
	if len(name) == 0 {
		name = r.URL.Query().Get("Name")
	}
	sid := sessionID(w, r)
	if err := dir.Delete(sid, name); err != nil {
		writeOpError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// sessionID returns the caller's session id, minting one into a cookie when
// the request doesn't carry it. The session identifies nothing but the flash
// slot.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie("sid")
	if err == nil && len(cookie.Value) > 0 {
		return cookie.Value
	}
	sid := uuid.New().String()
	http.SetCookie(w, &http.Cookie{Name: "sid", Value: sid, Path: "/"})
	return sid
}

// writeOpError maps a directory operation failure onto a response. Validation
// and duplicate failures are expected outcomes the client re-presents to the
// user; only store failures are treated as internal.
func writeOpError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		w.WriteHeader(http.StatusBadRequest)
		resp := struct {
			Msg    string
			Fields []dt.FieldError
		}{Msg: verr.Error(), Fields: verr.Fields}
		writeBytes(w, resp)
	case errors.Is(err, dt.ErrDuplicateName):
		w.WriteHeader(http.StatusConflict)
		writeError(w, err)
	case errors.Is(err, dt.ErrNotFound):
		writeErrorNotFound(w, err)
	default:
		writeErrorInternal(w, err)
	}
}

func writeBytes(w http.ResponseWriter, x interface{}) {
	byt, err := json.Marshal(x)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(byt); err != nil {
		writeError(w, err)
	}
}

func writeErrorInternal(w http.ResponseWriter, err error) {
	log.Info("failed", err)
	w.WriteHeader(http.StatusInternalServerError)
	writeError(w, err)
}

func writeErrorBadRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	writeError(w, err)
}

func writeErrorNotFound(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusNotFound)
	writeError(w, err)
}

func writeError(w http.ResponseWriter, err error) {
	tmp := strings.Replace(err.Error(), `"`, "'", -1)
	errS := struct{ Msg string }{Msg: tmp}
	byt, err := json.Marshal(errS)
	if err != nil {
		log.Info("failed to marshal error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(byt); err != nil {
		log.Info("failed to write error", err)
	}
}

var tmplIndex = template.Must(template.New("index").Parse(indexHTML))

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Contacts</title></head>
<body>
<h1>Contacts</h1>
{{if .Msg}}<p><em>{{.Msg}}</em></p>{{end}}
<table>
<tr><th>Name</th><th>Email</th><th>Phone</th></tr>
{{range .Contacts}}<tr><td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Phone}}</td></tr>
{{end}}</table>
</body>
</html>
`
