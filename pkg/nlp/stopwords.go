package nlp

import "strings"

// stopwords covers Portuguese and English function words that carry no signal
// for keyword extraction. Entries are stored normalized (lower case, no accents).
var stopwords = buildSet(`
a o e de da do das dos em no na nos nas um uma uns umas por para com sem sob
sobre entre contra desde até apos antes depois durante mediante perante
que quem qual quais quando onde como porque porquê pois então assim também
mais menos muito muitos muita muitas pouco poucos pouca poucas todo toda todos todas
outro outra outros outras mesmo mesma mesmos mesmas cada qualquer quaisquer
este esta estes estas esse essa esses essas aquele aquela aqueles aquelas isto isso aquilo
meu minha meus minhas teu tua seus suas nosso nossa nossos nossas dele dela deles delas
eu tu ele ela nós vós eles elas você vocês
ser estar ter haver fazer sendo estando tendo havendo fazendo
sou és é somos são era eram fui foi fomos foram serei será serão seja sejam
estou está estamos estão estava estavam esteve estive estiveram
tenho tem temos têm tinha tinham teve tive tiveram terá terão tenha tenham
há havia houve
não sim já ainda sempre nunca apenas somente inclusive
ano anos mês meses dia dias hora horas
the a an and or but if then else of in on at by for with without from to into onto
about above below under over between among through during before after while
this that these those there here where when which what who whom whose why how
i you he she it we they me him her us them my your his its our their
is are was were be been being am do does did have has had will would shall should
can could may might must not no yes all any both each few more most other some such
only own same so than too very just also
`)

func buildSet(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(raw) {
		set[Normalize(w)] = struct{}{}
	}
	return set
}

// IsStopword reports whether a normalized token is a stopword.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
