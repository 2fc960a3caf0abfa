package matching

import "strings"

// WildcardRegion is the candidate region value that matches any requested
// region. Candidates carrying it score the region dimension against every
// non-empty region set, with a distinguishable reason marker.
const WildcardRegion = "global"

// IndustryAliases maps query keywords to canonical industry tags. Scanned in
// order; the first hit wins. Longer phrases come before their substrings so
// "disaster recovery" is recognized before a bare "dr".
var IndustryAliases = []struct {
	Keyword   string
	Canonical string
}{
	{"healthcare", "healthcare"},
	{"hospital", "healthcare"},
	{"colocation", "colocation"},
	{"colo", "colocation"},
	{"disaster recovery", "backup-dr"},
	{"backup", "backup-dr"},
	{"dr", "backup-dr"},
	{"financial", "financial-services"},
	{"finance", "financial-services"},
	{"banking", "financial-services"},
	{"cloud", "cloud"},
	{"connectivity", "connectivity"},
	{"network", "connectivity"},
}

// industryCanonical maps every known industry tag (canonical or alias form a
// vendor record may carry) to its canonical value, for alias-insensitive
// comparison at scoring time.
var industryCanonical = map[string]string{
	"healthcare":         "healthcare",
	"hospital":           "healthcare",
	"colocation":         "colocation",
	"colo":               "colocation",
	"backup-dr":          "backup-dr",
	"backup":             "backup-dr",
	"disaster-recovery":  "backup-dr",
	"disaster recovery":  "backup-dr",
	"dr":                 "backup-dr",
	"financial-services": "financial-services",
	"financial":          "financial-services",
	"finance":            "financial-services",
	"banking":            "financial-services",
	"cloud":              "cloud",
	"connectivity":       "connectivity",
	"network":            "connectivity",
}

// KnownRegions is the gazetteer of region codes recognized in query text and
// vendor records.
var KnownRegions = []string{
	"us-east",
	"us-west",
	"us-central",
	"eu-west",
	"eu-central",
	"apac",
}

// RegionSynonyms maps free-text place phrases to region codes. City names
// double as city-level criteria; see CityRegions.
var RegionSynonyms = map[string]string{
	"us east":    "us-east",
	"east coast": "us-east",
	"us west":    "us-west",
	"west coast": "us-west",
	"us central": "us-central",
	"midwest":    "us-central",
	"eu west":    "eu-west",
	"eu central": "eu-central",
	"europe":     "eu-west",
	"asia":       "apac",
	"pacific":    "apac",
}

// CityRegions maps lower-cased city names to the region code they sit in. A
// city hit in a query contributes both a city criterion and its region.
var CityRegions = map[string]string{
	"ashburn":     "us-east",
	"new york":    "us-east",
	"atlanta":     "us-east",
	"miami":       "us-east",
	"phoenix":     "us-west",
	"las vegas":   "us-west",
	"seattle":     "us-west",
	"los angeles": "us-west",
	"dallas":      "us-central",
	"chicago":     "us-central",
	"denver":      "us-central",
	"london":      "eu-west",
	"dublin":      "eu-west",
	"amsterdam":   "eu-west",
	"paris":       "eu-west",
	"frankfurt":   "eu-central",
	"zurich":      "eu-central",
	"singapore":   "apac",
	"tokyo":       "apac",
	"sydney":      "apac",
	"hong kong":   "apac",
}

// KnownCertifications is the certification vocabulary matched as substrings
// of query text. Values are the normalized fragment stored on Criteria.
var KnownCertifications = []string{
	"hipaa",
	"soc 2",
	"iso 27001",
	"pci dss",
	"hitrust",
	"fedramp",
}

// ServiceAliases maps query keywords to canonical service names. Scanned in
// order, all hits collected.
var ServiceAliases = []struct {
	Keyword   string
	Canonical string
}{
	{"immutable", "immutable-backups"},
	{"dark fiber", "dark-fiber"},
	{"wavelength", "wavelengths"},
	{"managed backup", "managed-backup"},
	{"cross connect", "cross-connect"},
	{"peering", "peering"},
	{"colocation", "colocation"},
}

// serviceSynonyms lists, per canonical service, additional vendor-side terms
// that satisfy a request for it. Matching is substring-based on each term.
var serviceSynonyms = map[string][]string{
	"immutable-backups": {"immutable", "worm", "write-once", "air-gapped"},
	"dark-fiber":        {"dark fiber"},
	"wavelengths":       {"wavelength"},
	"managed-backup":    {"managed backup"},
	"cross-connect":     {"cross connect"},
}

// RiskPhrases maps qualitative risk language to the 1-10 tolerance scale.
// Scanned in order; the first hit wins, so more specific phrases lead.
var RiskPhrases = []struct {
	Phrase    string
	Tolerance int
}{
	{"very low risk", 2},
	{"conservative", 2},
	{"medium risk", 5},
	{"any risk", 9},
	{"cheapest", 9},
}

// CanonicalIndustry resolves an industry tag or alias to its canonical form.
// Unknown tags normalize to their lower-cased trimmed selves.
func CanonicalIndustry(tag string) string {
	key := strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := industryCanonical[key]; ok {
		return canonical
	}
	return key
}

// RegionForCity returns the region code a known city belongs to.
func RegionForCity(city string) (string, bool) {
	region, ok := CityRegions[strings.ToLower(strings.TrimSpace(city))]
	return region, ok
}

// serviceMatchTerms returns every term that satisfies the given requested
// service fragment: the fragment itself, its canonical form if the fragment
// is a known alias, and the canonical form's synonyms.
func serviceMatchTerms(fragment string) []string {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	terms := []string{fragment}

	canonical := fragment
	for _, a := range ServiceAliases {
		if a.Keyword == fragment || a.Canonical == fragment {
			canonical = a.Canonical
			break
		}
	}
	if canonical != fragment {
		terms = append(terms, canonical)
	}
	for _, syn := range serviceSynonyms[canonical] {
		if syn != fragment {
			terms = append(terms, syn)
		}
	}
	return terms
}
