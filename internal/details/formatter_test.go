package details

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/asset-atlas/internal/catalog"
	"github.com/ziadkadry99/asset-atlas/internal/selection"
)

func TestFormatArea(t *testing.T) {
	got := Format(&selection.SelectedArea{
		Name:           "Sales",
		Members:        []string{"HP Dynamics", "DART", "MPC"},
		ConnectedAreas: []string{"Transition Management", "Pre-Sales"},
	})
	want := `Functional Area: Sales

Assets in this area:
- HP Dynamics
- DART
- MPC

Connected Areas:
- Transition Management
- Pre-Sales
`
	if got != want {
		t.Errorf("Format area:\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatAreaWithoutConnections(t *testing.T) {
	got := Format(&selection.SelectedArea{Name: "Island", Members: []string{"x"}})
	if !strings.HasSuffix(got, "Connected Areas:\n") {
		t.Errorf("expected empty connected list, got %q", got)
	}
}

func TestFormatAsset(t *testing.T) {
	got := Format(&selection.SelectedAsset{Asset: catalog.Asset{
		ID:             "DART",
		Area:           "Sales",
		Description:    "Deal Analysis Response Tool.",
		KeyFeatures:    []string{"Pricing engine", "Deal structuring"},
		RelatedSystems: []string{"Portico", "MPC", "Portico"},
		DataFlow:       "Sends structured deals to MPC",
		BusinessImpact: "Consistent pricing",
	}})
	want := `Asset: DART

Functional Area: Sales

Description: Deal Analysis Response Tool.

Key Features:
- Pricing engine
- Deal structuring

Related Systems: Portico, MPC, Portico

Data Flow: Sends structured deals to MPC

Business Impact: Consistent pricing`
	if got != want {
		t.Errorf("Format asset:\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestHTML(t *testing.T) {
	html, err := HTML(&selection.SelectedArea{
		Name:    "Entitlement, Billing & Invoicing",
		Members: []string{"MS4", "S4"},
	})
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, "<li>MS4</li>") {
		t.Errorf("expected list items, got %s", html)
	}
	if !strings.Contains(html, "Billing &amp; Invoicing") {
		t.Errorf("expected escaped ampersand, got %s", html)
	}
}
