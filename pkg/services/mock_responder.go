package services

import (
	"strings"

	"procure-chat-api/pkg/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MockHelpResponse is returned when no rule matches the query.
const MockHelpResponse = "I can help with store opening status, vendor performance, high priority tasks, " +
	"contracts and budgets. Try asking \"What's the status of the Downtown Flagship Store?\" " +
	"or \"Which high priority tasks are overdue?\""

// responseRule is one keyword branch of the local assistant.
type responseRule struct {
	name    string
	matches func(q string) bool
	respond func(q string) string
}

// MockResponder answers free-text queries from the fixed dataset by keyword
// matching. Rules are tried in order and the first match wins.
type MockResponder struct {
	data    QueryDataset
	printer *message.Printer
	rules   []responseRule
}

// NewMockResponder builds a responder over ds.
func NewMockResponder(ds QueryDataset) *MockResponder {
	m := &MockResponder{
		data:    ds,
		printer: message.NewPrinter(language.English),
	}
	m.rules = []responseRule{
		{"store-status", m.mentionsStore, m.storeStatus},
		{"overdue-tasks", either(containsAny("overdue", "behind schedule"), hasWord("late")), m.overdueTasks},
		{"task-summary", containsAny("task", "checklist", "to-do", "todo"), m.taskSummary},
		{"vendor-summary", containsAny("vendor", "supplier"), m.vendorSummary},
		{"contract-summary", containsAny("contract", "agreement"), m.contractSummary},
		{"store-overview", containsAny("store", "location", "opening"), m.storeOverview},
		{"budget-summary", containsAny("budget", "spend", "spent", "cost"), m.budgetSummary},
		{"greeting", hasWord("hello", "hi", "hey", "help"), func(string) string { return MockHelpResponse }},
	}
	return m
}

// NewDefaultMockResponder builds a responder over the embedded dataset.
func NewDefaultMockResponder() *MockResponder {
	return NewMockResponder(DefaultQueryDataset())
}

// RuleNames lists the rules in the order they are tried.
func (m *MockResponder) RuleNames() []string {
	names := make([]string, len(m.rules))
	for i, r := range m.rules {
		names[i] = r.name
	}
	return names
}

// MatchRule returns the name of the rule that would answer query, or "" for the help fallback.
func (m *MockResponder) MatchRule(query string) string {
	q := normalizeQuery(query)
	for _, r := range m.rules {
		if r.matches(q) {
			return r.name
		}
	}
	return ""
}

// GetMockResponse answers query with the first matching rule, or the help text.
func (m *MockResponder) GetMockResponse(query string) string {
	q := normalizeQuery(query)
	for _, r := range m.rules {
		if r.matches(q) {
			return r.respond(q)
		}
	}
	return MockHelpResponse
}

// MockChatResponse answers the most recent user message of history.
func (m *MockResponder) MockChatResponse(history []models.ChatMessage) string {
	if msg, ok := LatestUserMessage(history); ok {
		return m.GetMockResponse(msg)
	}
	return MockHelpResponse
}

// LatestUserMessage returns the content of the last message with the user role.
func LatestUserMessage(history []models.ChatMessage) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleUser {
			return history[i].Content, true
		}
	}
	return "", false
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func containsAny(keywords ...string) func(string) bool {
	return func(q string) bool {
		for _, k := range keywords {
			if strings.Contains(q, k) {
				return true
			}
		}
		return false
	}
}

func either(preds ...func(string) bool) func(string) bool {
	return func(q string) bool {
		for _, p := range preds {
			if p(q) {
				return true
			}
		}
		return false
	}
}

// hasWord matches whole words only, so "late" does not fire on "latest".
func hasWord(words ...string) func(string) bool {
	return func(q string) bool {
		fields := strings.FieldsFunc(q, func(r rune) bool {
			return !(r >= 'a' && r <= 'z')
		})
		for _, f := range fields {
			for _, w := range words {
				if f == w {
					return true
				}
			}
		}
		return false
	}
}

func (m *MockResponder) findStore(q string) (models.Store, bool) {
	for _, s := range m.data.Stores {
		if strings.Contains(q, strings.ToLower(s.Name)) {
			return s, true
		}
		for _, alias := range s.Aliases {
			if strings.Contains(q, strings.ToLower(alias)) {
				return s, true
			}
		}
	}
	return models.Store{}, false
}

func (m *MockResponder) mentionsStore(q string) bool {
	_, ok := m.findStore(q)
	return ok
}

func (m *MockResponder) money(v float64) string {
	return m.printer.Sprintf("$%d", int64(v))
}

func (m *MockResponder) storeStatus(q string) string {
	s, _ := m.findStore(q)

	var sb strings.Builder
	sb.WriteString(m.printer.Sprintf("The %s in %s is %d%% complete and currently %s. ",
		s.Name, s.Location, s.CompletionPercentage, s.Status))
	sb.WriteString(m.printer.Sprintf("Opening is planned for %s. ", s.OpeningDate))
	sb.WriteString(m.printer.Sprintf("%s of the %s budget has been spent. ", m.money(s.Spent), m.money(s.Budget)))
	sb.WriteString(m.printer.Sprintf("Store manager: %s.", s.Manager))

	var open []string
	for _, t := range m.data.HighPriorityTasks {
		if t.StoreID == s.ID && t.Status != models.TaskCompleted {
			open = append(open, m.printer.Sprintf("%s (%s)", t.Title, t.Status))
		}
	}
	if len(open) > 0 {
		sb.WriteString(" Open high priority tasks: " + strings.Join(open, ", ") + ".")
	}
	return sb.String()
}

func (m *MockResponder) storeName(id string) string {
	if s, ok := m.data.StoreByID(id); ok {
		return s.Name
	}
	return id
}

func (m *MockResponder) overdueTasks(string) string {
	overdue := m.data.TasksWithStatus(models.TaskOverdue)
	if len(overdue) == 0 {
		return "There are no overdue high priority tasks."
	}

	var sb strings.Builder
	if len(overdue) == 1 {
		sb.WriteString("There is 1 overdue high priority task:")
	} else {
		sb.WriteString(m.printer.Sprintf("There are %d overdue high priority tasks:", len(overdue)))
	}
	for _, t := range overdue {
		sb.WriteString(m.printer.Sprintf("\n- %s (%s, due %s, assigned to %s)",
			t.Title, m.storeName(t.StoreID), t.DueDate, t.Assignee))
	}
	return sb.String()
}

func (m *MockResponder) taskSummary(string) string {
	order := []string{models.TaskOverdue, models.TaskInProgress, models.TaskPending, models.TaskCompleted}
	counts := make(map[string]int)
	for _, t := range m.data.HighPriorityTasks {
		if counts[t.Status] == 0 && !contains(order, t.Status) {
			order = append(order, t.Status)
		}
		counts[t.Status]++
	}

	var parts []string
	for _, status := range order {
		if counts[status] > 0 {
			parts = append(parts, m.printer.Sprintf("%d %s", counts[status], status))
		}
	}
	return m.printer.Sprintf("There are %d high priority tasks: %s.",
		len(m.data.HighPriorityTasks), strings.Join(parts, ", "))
}

func (m *MockResponder) vendorSummary(string) string {
	var active []string
	var totalSpend float64
	for _, v := range m.data.Vendors {
		totalSpend += v.TotalSpend
		if v.Status == "active" {
			active = append(active, m.printer.Sprintf("%s (%s, rating %.1f, %d%% on-time)",
				v.Name, v.Category, v.Rating, v.OnTimeDelivery))
		}
	}
	return m.printer.Sprintf("There are %d active vendors: %s. Total spend across all vendors: %s.",
		len(active), strings.Join(active, ", "), m.money(totalSpend))
}

func (m *MockResponder) contractSummary(string) string {
	var activeCount int
	var activeValue float64
	var expiring []string
	for _, c := range m.data.Contracts {
		switch c.Status {
		case "active":
			activeCount++
			activeValue += c.Value
		case "expiring":
			vendor := c.VendorID
			if v, ok := m.data.VendorByID(c.VendorID); ok {
				vendor = v.Name
			}
			expiring = append(expiring, m.printer.Sprintf("%s (%s, ends %s)", c.Title, vendor, c.EndDate))
		}
	}

	out := m.printer.Sprintf("There are %d active contracts worth %s in total.", activeCount, m.money(activeValue))
	if len(expiring) > 0 {
		out += " Expiring soon: " + strings.Join(expiring, ", ") + "."
	}
	return out
}

func (m *MockResponder) storeOverview(string) string {
	var sb strings.Builder
	sb.WriteString("Store opening progress:")
	for _, s := range m.data.Stores {
		sb.WriteString(m.printer.Sprintf("\n- %s (%s): %d%% complete, %s", s.Name, s.Location, s.CompletionPercentage, s.Status))
	}
	return sb.String()
}

func (m *MockResponder) budgetSummary(string) string {
	var budget, spent float64
	for _, s := range m.data.Stores {
		budget += s.Budget
		spent += s.Spent
	}
	pct := 0.0
	if budget > 0 {
		pct = spent / budget * 100
	}
	return m.printer.Sprintf("Total budget across %d stores is %s, of which %s (%.0f%%) has been spent.",
		len(m.data.Stores), m.money(budget), m.money(spent), pct)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
