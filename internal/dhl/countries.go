package dhl

// Канонические имена стран wire-формата по ISO-2 кодам получателя.
var countryNames = map[string]string{
	"US": "UNITED STATES OF AMERICA",
	"JP": "JAPAN",
	"CN": "CHINA, PEOPLES REPUBLIC",
	"GB": "UNITED KINGDOM",
	"DE": "GERMANY",
	"KR": "KOREA, REPUBLIC OF",
	"FR": "FRANCE",
	"SG": "SINGAPORE",
	"AU": "AUSTRALIA",
	"CA": "CANADA",
}

// countryName возвращает каноническое имя страны; неизвестный код
// даёт сторожевое значение UNKNOWN, а не ошибку.
func countryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return "UNKNOWN"
}
