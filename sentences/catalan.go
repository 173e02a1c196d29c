package sentences

// Catalan 返回内置的加泰罗尼亚语例句集合。
// 返回的是副本，调用方可以随意增删。
func Catalan() []string {
	return append([]string(nil), catalan...)
}

var catalan = []string{
	"La pau comença amb un somriure.",
	"El temps és or, però l'amistat és un tresor.",
	"Cada dia és una nova oportunitat.",
	"La paciència és la clau de l'èxit.",
	"El coneixement és poder.",
	"La bellesa està en els petits detalls.",
	"Un viatge de mil llegües comença amb un pas.",
	"L'amor és l'idioma universal.",
	"Aprendre és créixer cada dia.",
	"La natura ens ensenya la perfecció.",
	"Els somnis són el motor del futur.",
	"La música alimenta l'esperit.",
	"Cada esforç té la seva recompensa.",
	"La felicitat és un camí, no un destí.",
	"L'alegria compartida es multiplica.",
	"El silenci també és una resposta.",
	"La humilitat és signe de grandesa.",
	"Les paraules tenen poder i màgia.",
	"Barcelona és una ciutat meravellosa.",
	"El Mediterrani banya les nostres costes.",
	"La tramuntana bufa amb força.",
	"Les muntanyes de Montserrat són sagrades.",
	"El pa amb tomàquet és deliciós.",
	"La sardana és la nostra dansa tradicional.",
	"Sant Jordi és la festa dels llibres.",
	"Els castellers demostren força i equilibri.",
	"La Rambla és plena de vida.",
	"El Modernisme marca la ciutat.",
	"Catalunya és una nació amb història pròpia.",
	"Volem ser lliures i sobirans.",
	"Independència per construir el nostre futur.",
	"Som una nació sense estat propi.",
	"El poble català té dret a l'autodeterminació.",
	"Lluitarem pacíficament pels nostres drets.",
	"La nostra llengua és senyal d'identitat.",
	"El diàleg és l'eina de la pau.",
	"Junts som més forts i units.",
	"República catalana, somni de molts.",
	"Treballem per un país millor per a tothom.",
}
