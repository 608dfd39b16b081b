package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(context.Background(), zap.NewNop(), "test-token", "appBase")
	client.APIURL = server.URL

	return client, server
}

func TestListRecordsFollowsOffset(t *testing.T) {
	var gotAuth string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/appBase/tblApplicants", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "" {
			fmt.Fprint(w, `{"records": [{"id": "rec1", "fields": {"Name": "Emma Chen"}}], "offset": "next"}`)
			return
		}
		assert.Equal(t, "next", r.URL.Query().Get("offset"))
		fmt.Fprint(w, `{"records": [{"id": "rec2", "fields": {"Name": "Alex Kim"}}]}`)
	}))

	records, err := client.ListRecords("tblApplicants", nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	require.Len(t, records, 2)
	assert.Equal(t, "rec1", records[0].ID)
	assert.Equal(t, "Alex Kim", records[1].StringField("Name"))
}

func TestListRecordsBadStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusUnprocessableEntity)
	}))

	_, err := client.ListRecords("tblApplicants", nil)
	assert.ErrorContains(t, err, "bad status")
}

func TestFindRecordByIDField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"records": [
			{"id": "rec1", "fields": {"Applicant ID": "app_001"}},
			{"id": "rec2", "fields": {"Applicant ID": "app_002"}}
		]}`)
	}))

	record, err := client.FindRecord("tblApplicants", "APP_002", nil)
	require.NoError(t, err)
	assert.Equal(t, "rec2", record.ID)

	_, err = client.FindRecord("tblApplicants", "app_999", nil)
	assert.Error(t, err)
}

func TestFindRecordByRecordID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appBase/tblApplicants/rec42", r.URL.Path)
		fmt.Fprint(w, `{"id": "rec42", "fields": {"Name": "Emma Chen"}}`)
	}))

	record, err := client.FindRecord("tblApplicants", "rec42", nil)
	require.NoError(t, err)
	assert.Equal(t, "Emma Chen", record.StringField("Name"))
}

func TestListLinkedBuildsFormula(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		formula := r.URL.Query().Get("filterByFormula")
		assert.Equal(t, "SEARCH('rec42', ARRAYJOIN({Applicant}))", formula)
		fmt.Fprint(w, `{"records": [{"id": "recChild", "fields": {"Company": "Microsoft"}}]}`)
	}))

	records, err := client.ListLinked("tblWork", "Applicant", "rec42")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Microsoft", records[0].StringField("Company"))
}

func TestUpdateRecord(t *testing.T) {
	var gotBody map[string]any

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/appBase/tblApplicants/rec1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"id": "rec1"}`)
	}))

	err := client.UpdateRecord("tblApplicants", "rec1", map[string]any{
		"Shortlist Status": "Shortlisted",
		"LLM Score":        88.0,
	})
	require.NoError(t, err)

	fields, ok := gotBody["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Shortlisted", fields["Shortlist Status"])
	assert.Equal(t, 88.0, fields["LLM Score"])
}
