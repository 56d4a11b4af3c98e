package domain

import (
	"strings"

	"github.com/Velocity-Explorations/concierge/internal/normalize"
)

// CountryCode is the stable identifier for a country supported by the
// allowances rate table, e.g. "KENYA" or "UNITED_KINGDOM".
type CountryCode string

// CurrencyCode is an ISO 4217 currency code, e.g. "USD".
type CurrencyCode string

// Countries referenced directly by policy logic.
const (
	CountryUnitedStates CountryCode = "UNITED_STATES"
	CountryEthiopia     CountryCode = "ETHIOPIA"
	CountryCameroon     CountryCode = "CAMEROON"
	CountryPhilippines  CountryCode = "PHILIPPINES"
)

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyXAF CurrencyCode = "XAF"
	CurrencyPHP CurrencyCode = "PHP"
)

// Country holds the static facts needed to resolve rates for one country:
// the numeric code the allowances site's query form expects, and the single
// local currency the country maps to.
type Country struct {
	DSSRCode string
	Currency CurrencyCode
}

// countries is the immutable registry of every supported foreign country plus
// the United States. DSSR codes are the allowances site's form values.
var countries = map[CountryCode]Country{
	"AFGHANISTAN":                  {DSSRCode: "1149", Currency: "AFN"},
	"ALBANIA":                      {DSSRCode: "1070", Currency: "ALL"},
	"ALGERIA":                      {DSSRCode: "1150", Currency: "DZD"},
	"ANDORRA":                      {DSSRCode: "1376", Currency: "EUR"},
	"ANGOLA":                       {DSSRCode: "1176", Currency: "AOA"},
	"ANGUILLA":                     {DSSRCode: "1463", Currency: "XCD"},
	"ANTARCTICA":                   {DSSRCode: "1462", Currency: "USD"},
	"ANTIGUA_AND_BARBUDA":          {DSSRCode: "1041", Currency: "XCD"},
	"ARGENTINA":                    {DSSRCode: "1038", Currency: "ARS"},
	"ARMENIA":                      {DSSRCode: "1071", Currency: "AMD"},
	"ARUBA":                        {DSSRCode: "9988", Currency: "AWG"},
	"ASCENSION_ISLAND":             {DSSRCode: "1360", Currency: "SHP"},
	"AUSTRALIA":                    {DSSRCode: "1118", Currency: "AUD"},
	"AUSTRIA":                      {DSSRCode: "1072", Currency: "EUR"},
	"AZERBAIJAN":                   {DSSRCode: "1073", Currency: "AZN"},
	"BAHAMAS_THE":                  {DSSRCode: "1039", Currency: "BSD"},
	"BAHRAIN":                      {DSSRCode: "1151", Currency: "BHD"},
	"BANGLADESH":                   {DSSRCode: "1152", Currency: "BDT"},
	"BARBADOS":                     {DSSRCode: "1045", Currency: "BBD"},
	"BELARUS":                      {DSSRCode: "1357", Currency: "BYN"},
	"BELGIUM":                      {DSSRCode: "1075", Currency: "EUR"},
	"BELIZE":                       {DSSRCode: "1044", Currency: "BZD"},
	"BENIN":                        {DSSRCode: "1186", Currency: "XOF"},
	"BERMUDA":                      {DSSRCode: "1076", Currency: "BMD"},
	"BHUTAN":                       {DSSRCode: "1379", Currency: "BTN"},
	"BOLIVIA":                      {DSSRCode: "1040", Currency: "BOB"},
	"BONAIRE_SINT_EUSTATIUS_SABA":  {DSSRCode: "9989", Currency: "USD"},
	"BOSNIA_AND_HERZEGOVINA":       {DSSRCode: "1361", Currency: "BAM"},
	"BOTSWANA":                     {DSSRCode: "1178", Currency: "BWP"},
	"BRAZIL":                       {DSSRCode: "1042", Currency: "BRL"},
	"BRUNEI":                       {DSSRCode: "1119", Currency: "BND"},
	"BULGARIA":                     {DSSRCode: "1077", Currency: "BGN"},
	"BURKINA_FASO":                 {DSSRCode: "1240", Currency: "XOF"},
	"BURMA":                        {DSSRCode: "1120", Currency: "MMK"},
	"BURUNDI":                      {DSSRCode: "1179", Currency: "BIF"},
	"CABO_VERDE":                   {DSSRCode: "1181", Currency: "CVE"},
	"CAMBODIA":                     {DSSRCode: "1122", Currency: "KHR"},
	"CAMEROON":                     {DSSRCode: "1180", Currency: "XAF"},
	"CANADA":                       {DSSRCode: "1079", Currency: "CAD"},
	"CAYMAN_ISLANDS":               {DSSRCode: "1464", Currency: "KYD"},
	"CENTRAL_AFRICAN_REPUBLIC":     {DSSRCode: "1182", Currency: "XAF"},
	"CHAD":                         {DSSRCode: "1183", Currency: "XAF"},
	"CHAGOS_ARCHIPELAGO":           {DSSRCode: "1362", Currency: "USD"},
	"CHILE":                        {DSSRCode: "1046", Currency: "CLP"},
	"CHINA":                        {DSSRCode: "1123", Currency: "CNY"},
	"COCOS_KEELING_ISLANDS":        {DSSRCode: "1382", Currency: "AUD"},
	"COLOMBIA":                     {DSSRCode: "1047", Currency: "COP"},
	"COMOROS":                      {DSSRCode: "1184", Currency: "KMF"},
	"COOK_ISLANDS":                 {DSSRCode: "1363", Currency: "NZD"},
	"COSTA_RICA":                   {DSSRCode: "1048", Currency: "CRC"},
	"COTE_DIVOIRE":                 {DSSRCode: "1194", Currency: "XOF"},
	"CROATIA":                      {DSSRCode: "1358", Currency: "EUR"},
	"CUBA":                         {DSSRCode: "1049", Currency: "CUP"},
	"CURACAO":                      {DSSRCode: "9990", Currency: "ANG"},
	"CYPRUS":                       {DSSRCode: "1081", Currency: "EUR"},
	"CZECHIA":                      {DSSRCode: "1359", Currency: "CZK"},
	"DPRK_NORTH_KOREA":             {DSSRCode: "1429", Currency: "KPW"},
	"DRC_CONGO":                    {DSSRCode: "1241", Currency: "CDF"},
	"DENMARK":                      {DSSRCode: "1083", Currency: "DKK"},
	"DJIBOUTI":                     {DSSRCode: "1175", Currency: "DJF"},
	"DOMINICA":                     {DSSRCode: "1383", Currency: "XCD"},
	"DOMINICAN_REPUBLIC":           {DSSRCode: "1050", Currency: "DOP"},
	"ECUADOR":                      {DSSRCode: "1051", Currency: "USD"},
	"EGYPT":                        {DSSRCode: "1154", Currency: "EGP"},
	"EL_SALVADOR":                  {DSSRCode: "1052", Currency: "USD"},
	"EQUATORIAL_GUINEA":            {DSSRCode: "1187", Currency: "XAF"},
	"ERITREA":                      {DSSRCode: "1349", Currency: "ERN"},
	"ESTONIA":                      {DSSRCode: "1084", Currency: "EUR"},
	"ESWATINI":                     {DSSRCode: "1236", Currency: "SZL"},
	"ETHIOPIA":                     {DSSRCode: "1188", Currency: "ETB"},
	"FALKLAND_ISLANDS":             {DSSRCode: "1385", Currency: "FKP"},
	"FAROE_ISLANDS":                {DSSRCode: "1386", Currency: "DKK"},
	"FIJI":                         {DSSRCode: "1124", Currency: "FJD"},
	"FINLAND":                      {DSSRCode: "1085", Currency: "EUR"},
	"FRANCE":                       {DSSRCode: "1087", Currency: "EUR"},
	"FRENCH_GUIANA":                {DSSRCode: "1387", Currency: "EUR"},
	"FRENCH_POLYNESIA":             {DSSRCode: "1388", Currency: "XPF"},
	"GABON":                        {DSSRCode: "1189", Currency: "XAF"},
	"GAMBIA_THE":                   {DSSRCode: "1190", Currency: "GMD"},
	"GEORGIA":                      {DSSRCode: "1088", Currency: "GEL"},
	"GERMANY":                      {DSSRCode: "1089", Currency: "EUR"},
	"GHANA":                        {DSSRCode: "1191", Currency: "GHS"},
	"GIBRALTAR":                    {DSSRCode: "1390", Currency: "GIP"},
	"GREECE":                       {DSSRCode: "1086", Currency: "EUR"},
	"GREENLAND":                    {DSSRCode: "1364", Currency: "DKK"},
	"GRENADA":                      {DSSRCode: "1055", Currency: "XCD"},
	"GUADELOUPE":                   {DSSRCode: "1391", Currency: "EUR"},
	"GUATEMALA":                    {DSSRCode: "1054", Currency: "GTQ"},
	"GUINEA":                       {DSSRCode: "1193", Currency: "GNF"},
	"GUINEA_BISSAU":                {DSSRCode: "1192", Currency: "XOF"},
	"GUYANA":                       {DSSRCode: "1043", Currency: "GYD"},
	"HAITI":                        {DSSRCode: "1056", Currency: "HTG"},
	"HOLY_SEE":                     {DSSRCode: "1093", Currency: "EUR"},
	"HONDURAS":                     {DSSRCode: "1057", Currency: "HNL"},
	"HONG_KONG":                    {DSSRCode: "1126", Currency: "HKD"},
	"HUNGARY":                      {DSSRCode: "1090", Currency: "HUF"},
	"ICELAND":                      {DSSRCode: "1091", Currency: "ISK"},
	"INDIA":                        {DSSRCode: "1155", Currency: "INR"},
	"INDONESIA":                    {DSSRCode: "1127", Currency: "IDR"},
	"IRAN":                         {DSSRCode: "1392", Currency: "IRR"},
	"IRAQ":                         {DSSRCode: "1157", Currency: "IQD"},
	"IRELAND":                      {DSSRCode: "1247", Currency: "EUR"},
	"ISRAEL":                       {DSSRCode: "1158", Currency: "ILS"},
	"ITALY":                        {DSSRCode: "1092", Currency: "EUR"},
	"JAMAICA":                      {DSSRCode: "1058", Currency: "JMD"},
	"JAPAN":                        {DSSRCode: "1128", Currency: "JPY"},
	"JORDAN":                       {DSSRCode: "1160", Currency: "JOD"},
	"KAZAKHSTAN":                   {DSSRCode: "1094", Currency: "KZT"},
	"KENYA":                        {DSSRCode: "1195", Currency: "KES"},
	"KIRIBATI":                     {DSSRCode: "1365", Currency: "AUD"},
	"KOREA_SOUTH":                  {DSSRCode: "1129", Currency: "KRW"},
	"KOSOVO":                       {DSSRCode: "1460", Currency: "EUR"},
	"KUWAIT":                       {DSSRCode: "1161", Currency: "KWD"},
	"KYRGYZSTAN":                   {DSSRCode: "1095", Currency: "KGS"},
	"LAOS":                         {DSSRCode: "1130", Currency: "LAK"},
	"LATVIA":                       {DSSRCode: "1096", Currency: "EUR"},
	"LEBANON":                      {DSSRCode: "1162", Currency: "LBP"},
	"LESOTHO":                      {DSSRCode: "1177", Currency: "LSL"},
	"LIBERIA":                      {DSSRCode: "1196", Currency: "LRD"},
	"LIBYA":                        {DSSRCode: "1398", Currency: "LYD"},
	"LIECHTENSTEIN":                {DSSRCode: "1400", Currency: "CHF"},
	"LITHUANIA":                    {DSSRCode: "1097", Currency: "EUR"},
	"LUXEMBOURG":                   {DSSRCode: "1098", Currency: "EUR"},
	"MACAU":                        {DSSRCode: "1401", Currency: "MOP"},
	"MADAGASCAR":                   {DSSRCode: "1197", Currency: "MGA"},
	"MALAWI":                       {DSSRCode: "1199", Currency: "MWK"},
	"MALAYSIA":                     {DSSRCode: "1131", Currency: "MYR"},
	"MALDIVES":                     {DSSRCode: "1403", Currency: "MVR"},
	"MALI":                         {DSSRCode: "1198", Currency: "XOF"},
	"MALTA":                        {DSSRCode: "1099", Currency: "EUR"},
	"MARSHALL_ISLANDS":             {DSSRCode: "1146", Currency: "USD"},
	"MARTINIQUE":                   {DSSRCode: "1053", Currency: "EUR"},
	"MAURITANIA":                   {DSSRCode: "1200", Currency: "MRU"},
	"MAURITIUS":                    {DSSRCode: "1201", Currency: "MUR"},
	"MAYOTTE":                      {DSSRCode: "1461", Currency: "EUR"},
	"MEXICO":                       {DSSRCode: "1059", Currency: "MXN"},
	"MICRONESIA":                   {DSSRCode: "1132", Currency: "USD"},
	"MOLDOVA":                      {DSSRCode: "1100", Currency: "MDL"},
	"MONACO":                       {DSSRCode: "1404", Currency: "EUR"},
	"MONGOLIA":                     {DSSRCode: "1133", Currency: "MNT"},
	"MONTENEGRO":                   {DSSRCode: "1459", Currency: "EUR"},
	"MONTSERRAT":                   {DSSRCode: "1467", Currency: "XCD"},
	"MOROCCO":                      {DSSRCode: "1164", Currency: "MAD"},
	"MOZAMBIQUE":                   {DSSRCode: "1227", Currency: "MZN"},
	"NAMIBIA":                      {DSSRCode: "1232", Currency: "NAD"},
	"NAURU":                        {DSSRCode: "1405", Currency: "AUD"},
	"NEPAL":                        {DSSRCode: "1165", Currency: "NPR"},
	"NETHERLANDS":                  {DSSRCode: "1101", Currency: "EUR"},
	"NEW_CALEDONIA":                {DSSRCode: "1406", Currency: "XPF"},
	"NEW_ZEALAND":                  {DSSRCode: "1134", Currency: "NZD"},
	"NICARAGUA":                    {DSSRCode: "1061", Currency: "NIO"},
	"NIGER":                        {DSSRCode: "1228", Currency: "XOF"},
	"NIGERIA":                      {DSSRCode: "1351", Currency: "NGN"},
	"NIUE":                         {DSSRCode: "1407", Currency: "NZD"},
	"NORTH_MACEDONIA":              {DSSRCode: "1430", Currency: "MKD"},
	"NORWAY":                       {DSSRCode: "1102", Currency: "NOK"},
	"OMAN":                         {DSSRCode: "1167", Currency: "OMR"},
	"OTHER_FOREIGN_LOCALITIES":     {DSSRCode: "1375", Currency: "USD"},
	"PAKISTAN":                     {DSSRCode: "1166", Currency: "PKR"},
	"PALAU":                        {DSSRCode: "1355", Currency: "USD"},
	"PANAMA":                       {DSSRCode: "1062", Currency: "PAB"},
	"PAPUA_NEW_GUINEA":             {DSSRCode: "1136", Currency: "PGK"},
	"PARAGUAY":                     {DSSRCode: "1063", Currency: "PYG"},
	"PERU":                         {DSSRCode: "1064", Currency: "PEN"},
	"PHILIPPINES":                  {DSSRCode: "1139", Currency: "PHP"},
	"POLAND":                       {DSSRCode: "1103", Currency: "PLN"},
	"PORTUGAL":                     {DSSRCode: "1104", Currency: "EUR"},
	"QATAR":                        {DSSRCode: "1168", Currency: "QAR"},
	"REPUBLIC_OF_THE_CONGO":        {DSSRCode: "1185", Currency: "XAF"},
	"REUNION":                      {DSSRCode: "1428", Currency: "EUR"},
	"ROMANIA":                      {DSSRCode: "1105", Currency: "RON"},
	"RUSSIA":                       {DSSRCode: "1106", Currency: "RUB"},
	"RWANDA":                       {DSSRCode: "1229", Currency: "RWF"},
	"SAINT_HELENA":                 {DSSRCode: "1366", Currency: "SHP"},
	"SAINT_KITTS_AND_NEVIS":        {DSSRCode: "1410", Currency: "XCD"},
	"SAINT_VINCENT_AND_GRENADINES": {DSSRCode: "1413", Currency: "XCD"},
	"SAMOA":                        {DSSRCode: "1140", Currency: "WST"},
	"SAN_MARINO":                   {DSSRCode: "1414", Currency: "EUR"},
	"SAO_TOME_AND_PRINCIPE":        {DSSRCode: "1353", Currency: "STN"},
	"SAUDI_ARABIA":                 {DSSRCode: "1169", Currency: "SAR"},
	"SENEGAL":                      {DSSRCode: "1230", Currency: "XOF"},
	"SERBIA":                       {DSSRCode: "1367", Currency: "RSD"},
	"SEYCHELLES":                   {DSSRCode: "1242", Currency: "SCR"},
	"SIERRA_LEONE":                 {DSSRCode: "1231", Currency: "SLL"},
	"SINGAPORE":                    {DSSRCode: "1141", Currency: "SGD"},
	"SINT_MAARTEN":                 {DSSRCode: "9987", Currency: "ANG"},
	"SLOVAKIA":                     {DSSRCode: "1396", Currency: "EUR"},
	"SLOVENIA":                     {DSSRCode: "1397", Currency: "EUR"},
	"SOLOMON_ISLANDS":              {DSSRCode: "1138", Currency: "SBD"},
	"SOMALIA":                      {DSSRCode: "1249", Currency: "SOS"},
	"SOUTH_AFRICA":                 {DSSRCode: "1233", Currency: "ZAR"},
	"SOUTH_SUDAN":                  {DSSRCode: "1345", Currency: "SSP"},
	"SPAIN":                        {DSSRCode: "1107", Currency: "EUR"},
	"SRI_LANKA":                    {DSSRCode: "1153", Currency: "LKR"},
	"ST_LUCIA":                     {DSSRCode: "1411", Currency: "XCD"},
	"SUDAN":                        {DSSRCode: "1235", Currency: "SDG"},
	"SURINAME":                     {DSSRCode: "1065", Currency: "SRD"},
	"SWEDEN":                       {DSSRCode: "1108", Currency: "SEK"},
	"SWITZERLAND":                  {DSSRCode: "1109", Currency: "CHF"},
	"SYRIA":                        {DSSRCode: "1170", Currency: "SYP"},
	"TAIWAN":                       {DSSRCode: "1142", Currency: "TWD"},
	"TAJIKISTAN":                   {DSSRCode: "1110", Currency: "TJS"},
	"TANZANIA":                     {DSSRCode: "1237", Currency: "TZS"},
	"THAILAND":                     {DSSRCode: "1143", Currency: "THB"},
	"TIMOR_LESTE":                  {DSSRCode: "1456", Currency: "USD"},
	"TOGO":                         {DSSRCode: "1238", Currency: "XOF"},
	"TOKELAU":                      {DSSRCode: "1415", Currency: "NZD"},
	"TONGA":                        {DSSRCode: "1137", Currency: "TOP"},
	"TRINIDAD_AND_TOBAGO":          {DSSRCode: "1066", Currency: "TTD"},
	"TUNISIA":                      {DSSRCode: "1171", Currency: "TND"},
	"TURKEY":                       {DSSRCode: "1111", Currency: "TRY"},
	"TURKMENISTAN":                 {DSSRCode: "1112", Currency: "TMT"},
	"TURKS_AND_CAICOS_ISLANDS":     {DSSRCode: "1418", Currency: "USD"},
	"TUVALU":                       {DSSRCode: "1356", Currency: "AUD"},
	"UGANDA":                       {DSSRCode: "1239", Currency: "UGX"},
	"UKRAINE":                      {DSSRCode: "1113", Currency: "UAH"},
	"UNITED_ARAB_EMIRATES":         {DSSRCode: "1172", Currency: "AED"},
	"UNITED_KINGDOM":               {DSSRCode: "1114", Currency: "GBP"},
	"UNITED_STATES":                {DSSRCode: "-1", Currency: "USD"},
	"URUGUAY":                      {DSSRCode: "1067", Currency: "UYU"},
	"UZBEKISTAN":                   {DSSRCode: "1115", Currency: "UZS"},
	"VANUATU":                      {DSSRCode: "1421", Currency: "VUV"},
	"VENEZUELA":                    {DSSRCode: "1069", Currency: "VES"},
	"VIETNAM":                      {DSSRCode: "1144", Currency: "VND"},
	"VIRGIN_ISLANDS_BRITISH":       {DSSRCode: "1465", Currency: "USD"},
	"WALLIS_AND_FUTUNA":            {DSSRCode: "1422", Currency: "XPF"},
	"YEMEN":                        {DSSRCode: "1173", Currency: "YER"},
	"ZAMBIA":                       {DSSRCode: "1250", Currency: "ZMW"},
	"ZIMBABWE":                     {DSSRCode: "1234", Currency: "ZWL"},
}

// LookupCountry returns the registry entry for a country code.
func LookupCountry(code CountryCode) (Country, bool) {
	c, ok := countries[code]
	return c, ok
}

// CurrencyFor returns the local currency for a country, defaulting to USD for
// unknown codes so degraded lookups still produce a reportable amount.
func CurrencyFor(code CountryCode) CurrencyCode {
	if c, ok := countries[code]; ok {
		return c.Currency
	}
	return CurrencyUSD
}

// ParseCountry resolves free-form input ("Kenya", "Guinea-Bissau",
// "Côte d'Ivoire") to a registry code. Spaces and hyphens become the
// underscore the registry keys use; other punctuation is dropped. The second
// return is false for unknown countries.
func ParseCountry(s string) (CountryCode, bool) {
	var b strings.Builder
	for _, r := range strings.ToUpper(normalize.Text(s)) {
		switch {
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if n := b.Len(); n > 0 && b.String()[n-1] != '_' {
				b.WriteByte('_')
			}
		}
	}
	key := CountryCode(b.String())
	if _, ok := countries[key]; ok {
		return key, true
	}
	return "", false
}

// usStates is the set of valid two-letter domestic state codes (50 states
// plus DC).
var usStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {}, "FL": {}, "GA": {},
	"HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {},
	"NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {}, "WY": {},
	"DC": {},
}

// IsUSState reports whether s is a valid two-letter domestic state code.
func IsUSState(s string) bool {
	_, ok := usStates[strings.ToUpper(s)]
	return ok
}
