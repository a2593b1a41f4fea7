package assemble

// DefaultSessionNames maps SRF2025 session codes to their full names: five
// conference days, oral session blocks A through O, and one poster session
// per day. Codes missing from the table fall back to "Session <code>".
var DefaultSessionNames = map[string]string{
	"MOA": "Monday Opening and Awards",
	"MOB": "Monday Oral Session B",
	"MOC": "Monday Oral Session C",
	"MOD": "Monday Oral Session D",
	"MOE": "Monday Oral Session E",
	"MOF": "Monday Oral Session F",
	"MOG": "Monday Oral Session G",
	"MOH": "Monday Oral Session H",
	"MOI": "Monday Oral Session I",
	"MOJ": "Monday Oral Session J",
	"MOK": "Monday Oral Session K",
	"MOL": "Monday Oral Session L",
	"MOM": "Monday Oral Session M",
	"MON": "Monday Oral Session N",
	"MOO": "Monday Oral Session O",
	"MOP": "Monday Poster Session",
	"TUA": "Tuesday Oral Session A",
	"TUB": "Tuesday Oral Session B",
	"TUC": "Tuesday Oral Session C",
	"TUD": "Tuesday Oral Session D",
	"TUE": "Tuesday Oral Session E",
	"TUF": "Tuesday Oral Session F",
	"TUG": "Tuesday Oral Session G",
	"TUH": "Tuesday Oral Session H",
	"TUI": "Tuesday Oral Session I",
	"TUJ": "Tuesday Oral Session J",
	"TUK": "Tuesday Oral Session K",
	"TUL": "Tuesday Oral Session L",
	"TUM": "Tuesday Oral Session M",
	"TUN": "Tuesday Oral Session N",
	"TUO": "Tuesday Oral Session O",
	"TUP": "Tuesday Poster Session",
	"WEA": "Wednesday Oral Session A",
	"WEB": "Wednesday Oral Session B",
	"WEC": "Wednesday Oral Session C",
	"WED": "Wednesday Oral Session D",
	"WEE": "Wednesday Oral Session E",
	"WEF": "Wednesday Oral Session F",
	"WEG": "Wednesday Oral Session G",
	"WEH": "Wednesday Oral Session H",
	"WEI": "Wednesday Oral Session I",
	"WEJ": "Wednesday Oral Session J",
	"WEK": "Wednesday Oral Session K",
	"WEL": "Wednesday Oral Session L",
	"WEM": "Wednesday Oral Session M",
	"WEN": "Wednesday Oral Session N",
	"WEO": "Wednesday Oral Session O",
	"WEP": "Wednesday Poster Session",
	"THA": "Thursday Oral Session A",
	"THB": "Thursday Oral Session B",
	"THC": "Thursday Oral Session C",
	"THD": "Thursday Oral Session D",
	"THE": "Thursday Oral Session E",
	"THF": "Thursday Oral Session F",
	"THG": "Thursday Oral Session G",
	"THH": "Thursday Oral Session H",
	"THI": "Thursday Oral Session I",
	"THJ": "Thursday Oral Session J",
	"THK": "Thursday Oral Session K",
	"THL": "Thursday Oral Session L",
	"THM": "Thursday Oral Session M",
	"THN": "Thursday Oral Session N",
	"THO": "Thursday Oral Session O",
	"THP": "Thursday Poster Session",
	"FRA": "Friday Oral Session A",
	"FRB": "Friday Oral Session B",
	"FRC": "Friday Oral Session C",
	"FRD": "Friday Oral Session D",
	"FRE": "Friday Oral Session E",
	"FRF": "Friday Oral Session F",
	"FRG": "Friday Oral Session G",
	"FRH": "Friday Oral Session H",
	"FRI": "Friday Oral Session I",
	"FRJ": "Friday Oral Session J",
	"FRK": "Friday Oral Session K",
	"FRL": "Friday Oral Session L",
	"FRM": "Friday Oral Session M",
	"FRN": "Friday Oral Session N",
	"FRO": "Friday Oral Session O",
	"FRP": "Friday Poster Session",
}
