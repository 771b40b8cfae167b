package integration

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	exportRows   [][]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a Topodaily server is running$`, s.aTopodailyServerIsRunning)
	sc.Step(`^a surveyor "([^"]*)" with password "([^"]*)" exists$`, s.aSurveyorExists)
	sc.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, s.iAmLoggedInAs)

	sc.Step(`^I submit a survey record for village "([^"]*)" in commune "([^"]*)" of region "([^"]*)"$`, s.iSubmitASurveyRecord)
	sc.Step(`^I delete the user "([^"]*)"$`, s.iDeleteTheUser)
	sc.Step(`^I export my records as CSV$`, s.iExportMyRecords)

	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the user "([^"]*)" should still exist$`, s.theUserShouldStillExist)
	sc.Step(`^the export has exactly (\d+) data row\(s\)$`, s.theExportHasDataRows)
	sc.Step(`^the export contains village "([^"]*)"$`, s.theExportContainsVillage)
}

func (s *StepsContext) do(req *http.Request) error {
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}
	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.response = resp
	s.responseBody = body
	return nil
}

func (s *StepsContext) aTopodailyServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aSurveyorExists(username, password string) error {
	payload := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	req, err := http.NewRequest("POST", s.tc.ServerURL+"/users", bytes.NewReader([]byte(payload)))
	if err != nil {
		return err
	}
	if err := s.do(req); err != nil {
		return err
	}
	// 409 means the account is already there from an earlier scenario.
	if s.response.StatusCode != http.StatusCreated && s.response.StatusCode != http.StatusConflict {
		return fmt.Errorf("signup failed with status %d: %s", s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) iAmLoggedInAs(username, password string) error {
	req, err := http.NewRequest("POST", s.tc.ServerURL+"/authn/login", nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(username, password)

	s.authToken = ""
	if err := s.do(req); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %s", s.response.StatusCode, s.responseBody)
	}

	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(s.responseBody, &login); err != nil {
		return err
	}
	if login.Token == "" {
		return fmt.Errorf("login returned no token")
	}
	s.authToken = login.Token
	return nil
}

func (s *StepsContext) iSubmitASurveyRecord(village, commune, region string) error {
	payload := fmt.Sprintf(
		`{"date":%q,"village":%q,"region":%q,"commune":%q,"type":"Champs","quantite":1,"appareil":"TRIMBLE"}`,
		time.Now().Format("2006-01-02"), village, region, commune,
	)
	req, err := http.NewRequest("POST", s.tc.ServerURL+"/records", bytes.NewReader([]byte(payload)))
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *StepsContext) iDeleteTheUser(username string) error {
	// Resolve the user id through the admin listing.
	req, err := http.NewRequest("GET", s.tc.ServerURL+"/admin/users", nil)
	if err != nil {
		return err
	}
	if err := s.do(req); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("listing users failed with status %d: %s", s.response.StatusCode, s.responseBody)
	}

	var users []struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(s.responseBody, &users); err != nil {
		return err
	}

	var id int64
	for _, u := range users {
		if u.Username == username {
			id = u.ID
			break
		}
	}
	if id == 0 {
		return fmt.Errorf("user %s not found in admin listing", username)
	}

	req, err = http.NewRequest("DELETE", fmt.Sprintf("%s/admin/users/%d", s.tc.ServerURL, id), nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *StepsContext) iExportMyRecords() error {
	req, err := http.NewRequest("GET", s.tc.ServerURL+"/records/export", nil)
	if err != nil {
		return err
	}
	if err := s.do(req); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("export failed with status %d: %s", s.response.StatusCode, s.responseBody)
	}

	rows, err := csv.NewReader(bytes.NewReader(s.responseBody)).ReadAll()
	if err != nil {
		return fmt.Errorf("export is not valid CSV: %w", err)
	}
	if len(rows) == 0 || rows[0][0] != "id" {
		return fmt.Errorf("export is missing its header row")
	}
	s.exportRows = rows
	return nil
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theUserShouldStillExist(username string) error {
	var count int64
	if err := s.tc.DB.Raw("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count).Error; err != nil {
		return err
	}
	if count != 1 {
		return fmt.Errorf("expected user %s to exist, found %d rows", username, count)
	}
	return nil
}

func (s *StepsContext) theExportHasDataRows(n int) error {
	if s.exportRows == nil {
		return fmt.Errorf("no export recorded")
	}
	got := len(s.exportRows) - 1
	if got != n {
		return fmt.Errorf("expected %d data row(s), got %d", n, got)
	}
	return nil
}

func (s *StepsContext) theExportContainsVillage(village string) error {
	for _, row := range s.exportRows[1:] {
		if len(row) > 2 && strings.EqualFold(row[2], village) {
			return nil
		}
	}
	return fmt.Errorf("village %s not found in export", village)
}
