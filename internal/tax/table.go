package tax

type classPair struct {
	commercial Class
	private    Class
}

// euCountries map by customer class: commercial customers fall under the
// intra-EU reverse-charge class, private customers pay the domestic rate.
var euCountries = []string{
	"Austria",
	"Belgium",
	"Bulgaria",
	"Croatia",
	"Cyprus",
	"Czech Republic",
	"Denmark",
	"Estonia",
	"Finland",
	"France",
	"Germany",
	"Greece",
	"Hungary",
	"Ireland",
	"Italy",
	"Latvia",
	"Lithuania",
	"Luxembourg",
	"Malta",
	"Poland",
	"Portugal",
	"Romania",
	"Slovakia",
	"Slovenia",
	"Spain",
	"Sweden",
}

// restCountries fall outside any VAT treatment for both customer classes.
var restCountries = []string{
	"Afghanistan", "Albania", "Algeria", "Andorra", "Angola",
	"Antigua and Barbuda", "Argentina", "Armenia", "Aruba", "Australia",
	"Azerbaijan", "Bahamas", "Bahrain", "Bangladesh", "Barbados",
	"Belarus", "Belize", "Benin", "Bhutan", "Bolivia",
	"Bosnia and Herzegovina", "Botswana", "Brazil", "Brunei Darussalam",
	"Burkina Faso", "Burundi", "Cambodia", "Cameroon", "Canada",
	"Cape Verde", "Central African Republic", "Chad", "Chile", "China",
	"Colombia", "Congo", "Cook Islands", "Costa Rica", "Côte d'Ivoire",
	"Cuba", "Curaçao", "Djibouti", "Dominica", "Dominican Republic",
	"East Timor", "Ecuador", "Egypt", "El Salvador", "Equatorial Guinea",
	"Eritrea", "Ethiopia", "Fiji", "Gabon", "Gambia", "Georgia", "Ghana",
	"Grenada", "Guatemala", "Guinea", "Guinea-Bissau", "Guyana", "Haiti",
	"Honduras", "Hongkong", "Iceland", "India", "Indonesia", "Iran",
	"Iraq", "Israel", "Jamaica", "Japan", "Jordan", "Qatar", "Kazachstan",
	"Kenya", "Korea, Republic", "Kosovo", "Kuwait", "Kyrgyzstan", "Laos",
	"Lebanon", "Lesotho", "Liberia", "Libya", "Liechtenstein",
	"Macedonia", "Madagascar", "Malawi", "Malaysia", "Maldives", "Mali",
	"Marshall Islands", "Mauritania", "Mauritius", "Mexico", "Moldova",
	"Monaco", "Mongolia", "Morocco", "Mozambique", "Myanmar", "Namibia",
	"Nauru", "Nepal", "New Zealand", "Nicaragua", "Niger", "Nigeria",
	"Niue", "North Korea", "Norway", "Oman", "Pakistan", "Palau",
	"Panama", "Papua New Guinea", "Paraguay", "Peru", "Philippines",
	"Russia", "Rwanda", "Samoa", "San Marino", "Saudi Arabia", "Senegal",
	"Serbia", "Seychelles", "Sierra Leone", "Singapore",
	"Solomon Islands", "Somalia", "South Africa", "South Korea",
	"Sri Lanka", "St Maarten", "Sudan", "Suriname", "Swaziland",
	"Switzerland", "Syria", "Taiwan", "Tajikistan", "Tanzania",
	"Thailand", "Togo", "Tonga", "Trinidad and Tobago", "Tunisia",
	"Turkey", "Turkmenistan", "Tuvalu", "Uganda", "Ukraine",
	"United Arabian Emirates", "United Kingdom", "United States",
	"Uruguay", "Uzbekistan", "Vatican City State", "Venezuela", "Vietnam",
	"Yemen", "Yugoslavia", "Zambia", "Zimbabwe",
}

var table = buildTable()

func buildTable() map[string]classPair {
	t := make(map[string]classPair, len(euCountries)+len(restCountries)+1)

	t[HomeCountry] = classPair{commercial: ClassDomestic, private: ClassDomestic}
	for _, country := range euCountries {
		t[country] = classPair{commercial: ClassEU, private: ClassDomestic}
	}
	for _, country := range restCountries {
		t[country] = classPair{commercial: ClassRest, private: ClassRest}
	}

	return t
}
