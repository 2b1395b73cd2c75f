package country

// nameCodes maps country names as they appear in league feeds to flag codes.
var nameCodes = map[string]string{
	"World":                  Unknown,
	"England":                "gb-eng",
	"Scotland":               "gb-sct",
	"Wales":                  "gb-wls",
	"Northern Ireland":       "gb-nir",
	"United Kingdom":         "gb",
	"Ireland":                "ie",
	"Spain":                  "es",
	"Italy":                  "it",
	"Germany":                "de",
	"France":                 "fr",
	"Portugal":               "pt",
	"Netherlands":            "nl",
	"Belgium":                "be",
	"Switzerland":            "ch",
	"Austria":                "at",
	"Denmark":                "dk",
	"Sweden":                 "se",
	"Norway":                 "no",
	"Finland":                "fi",
	"Iceland":                "is",
	"Poland":                 "pl",
	"Czech Republic":         "cz",
	"Czechia":                "cz",
	"Slovakia":               "sk",
	"Hungary":                "hu",
	"Romania":                "ro",
	"Bulgaria":               "bg",
	"Greece":                 "gr",
	"Turkey":                 "tr",
	"Türkiye":                "tr",
	"Russia":                 "ru",
	"Ukraine":                "ua",
	"Belarus":                "by",
	"Croatia":                "hr",
	"Serbia":                 "rs",
	"Slovenia":               "si",
	"Bosnia and Herzegovina": "ba",
	"Montenegro":             "me",
	"North Macedonia":        "mk",
	"Albania":                "al",
	"Kosovo":                 "xk",
	"Cyprus":                 "cy",
	"Israel":                 "il",
	"Georgia":                "ge",
	"Armenia":                "am",
	"Azerbaijan":             "az",
	"Kazakhstan":             "kz",
	"Luxembourg":             "lu",
	"Malta":                  "mt",
	"Estonia":                "ee",
	"Latvia":                 "lv",
	"Lithuania":              "lt",
	"Moldova":                "md",
	"Faroe Islands":          "fo",
	"Brazil":                 "br",
	"Argentina":              "ar",
	"Uruguay":                "uy",
	"Paraguay":               "py",
	"Chile":                  "cl",
	"Colombia":               "co",
	"Peru":                   "pe",
	"Ecuador":                "ec",
	"Bolivia":                "bo",
	"Venezuela":              "ve",
	"Mexico":                 "mx",
	"USA":                    "us",
	"United States":          "us",
	"Canada":                 "ca",
	"Costa Rica":             "cr",
	"Honduras":               "hn",
	"Panama":                 "pa",
	"Jamaica":                "jm",
	"El Salvador":            "sv",
	"Guatemala":              "gt",
	"Japan":                  "jp",
	"South Korea":            "kr",
	"Korea Republic":         "kr",
	"North Korea":            "kp",
	"China":                  "cn",
	"Australia":              "au",
	"Saudi Arabia":           "sa",
	"Qatar":                  "qa",
	"United Arab Emirates":   "ae",
	"Iran":                   "ir",
	"Iraq":                   "iq",
	"Jordan":                 "jo",
	"Uzbekistan":             "uz",
	"India":                  "in",
	"Indonesia":              "id",
	"Thailand":               "th",
	"Vietnam":                "vn",
	"Malaysia":               "my",
	"Singapore":              "sg",
	"Philippines":            "ph",
	"Morocco":                "ma",
	"Algeria":                "dz",
	"Tunisia":                "tn",
	"Egypt":                  "eg",
	"Nigeria":                "ng",
	"Ghana":                  "gh",
	"Senegal":                "sn",
	"Cameroon":               "cm",
	"Ivory Coast":            "ci",
	"Côte d'Ivoire":          "ci",
	"Mali":                   "ml",
	"South Africa":           "za",
	"Kenya":                  "ke",
	"DR Congo":               "cd",
	"New Zealand":            "nz",
}

// aliasCodes are substrings seen in feed variants of the names above. The home
// nations stay out of it: "wales" would match "New South Wales".
var aliasCodes = map[string]string{
	"korea republic":      "kr",
	"republic of korea":   "kr",
	"korea dpr":           "kp",
	"usa":                 "us",
	"united states":       "us",
	"ivory":               "ci",
	"d ivoire":            "ci",
	"czech":               "cz",
	"bosnia":              "ba",
	"herzegovina":         "ba",
	"macedonia":           "mk",
	"emirates":            "ae",
	"uae":                 "ae",
	"congo dr":            "cd",
	"dr congo":            "cd",
	"holland":             "nl",
	"turkiye":             "tr",
	"brasil":              "br",
	"espana":              "es",
	"deutschland":         "de",
	"iran ir":             "ir",
	"republic of ireland": "ie",
	"international":       Unknown,
}
