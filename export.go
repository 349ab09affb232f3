package vaultpdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// NoFolderLabel is the folder label assigned to items that have no folder
// or reference a folder id that does not exist in the export.
const NoFolderLabel = "No Folder"

// ItemType identifies the kind of vault item. Bitwarden has exported both
// string names and numeric codes over the years; UnmarshalJSON accepts
// either form and normalizes the known codes to their string names.
type ItemType string

// Known item types.
const (
	TypeLogin      ItemType = "login"
	TypeSecureNote ItemType = "secureNote"
	TypeCard       ItemType = "card"
	TypeIdentity   ItemType = "identity"
)

// numeric codes used by older export formats
var itemTypeCodes = map[int]ItemType{
	1: TypeLogin,
	2: TypeSecureNote,
	3: TypeCard,
	4: TypeIdentity,
}

// UnmarshalJSON decodes an item type from either a JSON string or one of
// the numeric codes. Unrecognized values are kept verbatim so future
// schema additions degrade to a raw label instead of failing the load.
func (t *ItemType) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		if known, ok := itemTypeCodes[code]; ok {
			*t = known
		} else {
			*t = ItemType(strconv.Itoa(code))
		}
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		// Tolerate any other shape (null, object) as an absent type.
		*t = ""
		return nil
	}
	*t = ItemType(name)
	return nil
}

// Label returns the human-readable name for the item type. Unknown types
// echo their raw value; an absent type labels as "Item".
func (t ItemType) Label() string {
	switch t {
	case TypeLogin:
		return "Login"
	case TypeSecureNote:
		return "Secure Note"
	case TypeCard:
		return "Card"
	case TypeIdentity:
		return "Identity"
	case "":
		return "Item"
	}
	return string(t)
}

// VaultExport is the root of an unencrypted Bitwarden-style JSON export.
// Exports from some app versions omit empty collections entirely; both
// slices decode to nil in that case and are treated as empty.
type VaultExport struct {
	Folders []Folder `json:"folders"`
	Items   []Item   `json:"items"`
}

// Folder is a named container referenced by items via FolderID.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is one credential entry. Only the fields this tool renders are
// declared; anything else in the export is ignored by the decoder.
type Item struct {
	Name         string   `json:"name"`
	Type         ItemType `json:"type"`
	FolderID     string   `json:"folderId"`
	Favorite     bool     `json:"favorite"`
	Notes        string   `json:"notes"`
	Login        *Login   `json:"login"`
	Fields       []Field  `json:"fields"`
	CreationDate string   `json:"creationDate"`
	RevisionDate string   `json:"revisionDate"`
}

// Login holds the credential sub-object of a login item.
type Login struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	TOTP     string     `json:"totp"`
	URIs     []LoginURI `json:"uris"`
}

// LoginURI is one entry of a login's uri list.
type LoginURI struct {
	URI string `json:"uri"`
}

// Field is a user-defined custom field attached to an item.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Row is the normalized, renderer-facing representation of one item.
// Every string field is always defined: absent source data becomes an
// explicit empty value, never a missing key, so the renderer needs no
// existence checks.
type Row struct {
	Name        string
	FolderLabel string
	TypeLabel   string
	Username    string
	Password    string
	URLs        []string
	TOTP        string
	Favorite    bool
	Notes       string
	Fields      []string
	Created     string
	Modified    string
}

// ParseExport decodes a vault export from raw JSON bytes.
//
// Parsing is strict only about the top level: the bytes must form a JSON
// object. Every structural deviation below that (missing arrays, absent
// optional fields, unknown extra fields, unrecognized type codes) is
// tolerated through field-level defaulting, because real exports vary
// across app versions.
func ParseExport(data []byte) (*VaultExport, error) {
	// json.Unmarshal treats a top-level null as a no-op success, which
	// would silently yield an empty vault. Require an object outright.
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top-level value is not a JSON object", ErrMalformedInput)
	}

	var export VaultExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return &export, nil
}

// Rows derives the normalized row sequence from the export. The result
// has the same length and order as the export's item list; the user's own
// vault ordering is never re-sorted here (see [SortRows]).
func (e *VaultExport) Rows() []Row {
	// First occurrence wins on duplicate folder ids, keeping the mapping
	// deterministic across runs.
	folders := make(map[string]string, len(e.Folders))
	for _, f := range e.Folders {
		if _, ok := folders[f.ID]; !ok {
			folders[f.ID] = f.Name
		}
	}

	rows := make([]Row, 0, len(e.Items))
	for _, item := range e.Items {
		rows = append(rows, newRow(item, folders))
	}
	return rows
}

func newRow(item Item, folders map[string]string) Row {
	row := Row{
		Name:      item.Name,
		TypeLabel: item.Type.Label(),
		Favorite:  item.Favorite,
		Notes:     item.Notes,
		Created:   normalizeTime(item.CreationDate),
		Modified:  normalizeTime(item.RevisionDate),
		URLs:      []string{},
	}

	row.FolderLabel = NoFolderLabel
	if name, ok := folders[item.FolderID]; ok && item.FolderID != "" {
		row.FolderLabel = name
	}

	// The login sub-object is read for every item type; cards and notes
	// simply end up with empty credential fields.
	if login := item.Login; login != nil {
		row.Username = login.Username
		row.Password = login.Password
		row.TOTP = login.TOTP
		for _, u := range login.URIs {
			if u.URI != "" {
				row.URLs = append(row.URLs, u.URI)
			}
		}
	}

	for _, f := range item.Fields {
		if f.Value == "" {
			continue
		}
		name := f.Name
		if name == "" {
			name = "Field"
		}
		row.Fields = append(row.Fields, name+": "+f.Value)
	}

	return row
}

// SortRows orders rows by folder label and then item name, both
// case-insensitively. Output order is preserved by default; this grouping
// is an explicit opt-in (the --sort-by-folder flag). The sort is stable,
// so items within the same folder and name keep their export order.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		fi, fj := strings.ToLower(rows[i].FolderLabel), strings.ToLower(rows[j].FolderLabel)
		if fi != fj {
			return fi < fj
		}
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
}

// normalizeTime reformats an RFC 3339 timestamp into the compact form
// shown in the document. Values that do not parse pass through verbatim.
func normalizeTime(value string) string {
	if value == "" {
		return ""
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return ts.Format("01/02/2006 03:04 PM")
}
