package vaultpdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultpdf "github.com/porticus-lab/go-vault-pdf"
)

func TestParseExport_RoundTrip(t *testing.T) {
	data := []byte(`{
		"folders": [{"id": "f1", "name": "Work"}],
		"items": [{
			"name": "Site",
			"type": "login",
			"folderId": "f1",
			"login": {
				"username": "a@b.com",
				"password": "p@ss",
				"uris": [{"uri": "https://x.com"}]
			}
		}]
	}`)

	export, err := vaultpdf.ParseExport(data)
	require.NoError(t, err)

	rows := export.Rows()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Site", row.Name)
	assert.Equal(t, "Work", row.FolderLabel)
	assert.Equal(t, "Login", row.TypeLabel)
	assert.Equal(t, "a@b.com", row.Username)
	assert.Equal(t, "p@ss", row.Password)
	assert.Equal(t, []string{"https://x.com"}, row.URLs)
	assert.Empty(t, row.TOTP)
}

func TestParseExport_MalformedInput(t *testing.T) {
	cases := map[string]string{
		"not JSON":        `{"items": [`,
		"garbage":         `!!!`,
		"top-level array": `[]`,
		"top-level value": `42`,
		"top-level null":  `null`,
		"empty input":     ``,
		"whitespace only": "  \n\t",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := vaultpdf.ParseExport([]byte(input))
			assert.ErrorIs(t, err, vaultpdf.ErrMalformedInput)
		})
	}
}

func TestParseExport_MissingCollections(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, export.Rows())

	export, err = vaultpdf.ParseExport([]byte(`{"folders": []}`))
	require.NoError(t, err)
	assert.Empty(t, export.Rows())
}

func TestRows_OrderPreserved(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{
		"items": [
			{"name": "zebra", "type": "login"},
			{"name": "apple", "type": "card"},
			{"name": "mango", "type": "login"}
		]
	}`))
	require.NoError(t, err)

	rows := export.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "zebra", rows[0].Name)
	assert.Equal(t, "apple", rows[1].Name)
	assert.Equal(t, "mango", rows[2].Name)
}

func TestRows_UnknownFolderID(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{
		"folders": [{"id": "f1", "name": "Work"}],
		"items": [
			{"name": "a", "folderId": "missing"},
			{"name": "b", "folderId": null},
			{"name": "c"}
		]
	}`))
	require.NoError(t, err)

	for _, row := range export.Rows() {
		assert.Equal(t, vaultpdf.NoFolderLabel, row.FolderLabel)
	}
}

func TestRows_DuplicateFolderIDFirstWins(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{
		"folders": [
			{"id": "f1", "name": "First"},
			{"id": "f1", "name": "Second"}
		],
		"items": [{"name": "a", "folderId": "f1"}]
	}`))
	require.NoError(t, err)

	rows := export.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "First", rows[0].FolderLabel)
}

func TestRows_TypeLabels(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{
		"items": [
			{"name": "a", "type": "login"},
			{"name": "b", "type": "secureNote"},
			{"name": "c", "type": "card"},
			{"name": "d", "type": "identity"},
			{"name": "e", "type": 1},
			{"name": "f", "type": 2},
			{"name": "g", "type": 3},
			{"name": "h", "type": 4},
			{"name": "i", "type": "sshKey"},
			{"name": "j", "type": 9},
			{"name": "k"}
		]
	}`))
	require.NoError(t, err)

	rows := export.Rows()
	require.Len(t, rows, 11)

	want := []string{
		"Login", "Secure Note", "Card", "Identity",
		"Login", "Secure Note", "Card", "Identity",
		"sshKey", "9", "Item",
	}
	for i, label := range want {
		assert.Equal(t, label, rows[i].TypeLabel, "row %d", i)
	}
}

func TestRows_NoLoginObject(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{
		"items": [{"name": "note only", "type": "secureNote"}]
	}`))
	require.NoError(t, err)

	rows := export.Rows()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "", row.Username)
	assert.Equal(t, "", row.Password)
	assert.Equal(t, "", row.TOTP)
	assert.NotNil(t, row.URLs)
	assert.Empty(t, row.URLs)
}

func TestRows_URIsSkipEmptyValues(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{
		"items": [{
			"name": "a",
			"type": "login",
			"login": {"uris": [
				{"uri": "https://one.example"},
				{"uri": ""},
				{},
				{"uri": "https://two.example"}
			]}
		}]
	}`))
	require.NoError(t, err)

	rows := export.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"https://one.example", "https://two.example"}, rows[0].URLs)
}

func TestRows_SupplementaryFields(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{
		"items": [{
			"name": "a",
			"type": "login",
			"favorite": true,
			"notes": "keep safe",
			"creationDate": "2024-03-01T10:30:00.000Z",
			"revisionDate": "not a timestamp",
			"fields": [
				{"name": "PIN", "value": "1234"},
				{"name": "ignored", "value": ""},
				{"value": "anonymous"}
			],
			"login": {"totp": "JBSWY3DPEHPK3PXP"}
		}]
	}`))
	require.NoError(t, err)

	rows := export.Rows()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.Favorite)
	assert.Equal(t, "keep safe", row.Notes)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", row.TOTP)
	assert.Equal(t, "03/01/2024 10:30 AM", row.Created)
	assert.Equal(t, "not a timestamp", row.Modified)
	assert.Equal(t, []string{"PIN: 1234", "Field: anonymous"}, row.Fields)
}

func TestRows_ExtraJSONFieldsIgnored(t *testing.T) {
	export, err := vaultpdf.ParseExport([]byte(`{
		"encrypted": false,
		"collections": [],
		"items": [{
			"name": "a",
			"type": "login",
			"organizationId": null,
			"reprompt": 0,
			"passwordHistory": [{"lastUsedDate": "x", "password": "old"}]
		}]
	}`))
	require.NoError(t, err)
	assert.Len(t, export.Rows(), 1)
}

func TestSortRows(t *testing.T) {
	rows := []vaultpdf.Row{
		{Name: "beta", FolderLabel: "work"},
		{Name: "Alpha", FolderLabel: "Work"},
		{Name: "solo", FolderLabel: "Archive"},
	}

	vaultpdf.SortRows(rows)

	assert.Equal(t, "solo", rows[0].Name)
	assert.Equal(t, "Alpha", rows[1].Name)
	assert.Equal(t, "beta", rows[2].Name)
}

func TestItemTypeLabel(t *testing.T) {
	assert.Equal(t, "Login", vaultpdf.TypeLogin.Label())
	assert.Equal(t, "Secure Note", vaultpdf.TypeSecureNote.Label())
	assert.Equal(t, "Card", vaultpdf.TypeCard.Label())
	assert.Equal(t, "Identity", vaultpdf.TypeIdentity.Label())
	assert.Equal(t, "Item", vaultpdf.ItemType("").Label())
	assert.Equal(t, "wildcard", vaultpdf.ItemType("wildcard").Label())
}
