package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var seedInputs = []string{
	"",
	"template<class T> class Box { T get() const; };\n%template(IntBox) Box<int>;\n",
	"template<class... A> struct Tup { Tup(A&... a); };\n%template(TupID) Tup<int,double>;\n",
	"template<class T> struct Vec {};\ntemplate<class T> struct Vec<T*> {};\n%template(PVec) Vec<int*>;\n",
	"template<class K, class C = Less<K> > struct Map {};\n%template(IntMap) Map<int>;\n",
	"namespace acme { typedef unsigned long size_type; }\n",
	"%template() Box<int>;\n",
	"template<> struct Box<int> {};\n",
	"template<class T> T max(T a, T b);\n",
	"class ; struct {",
	"template<class T struct Broken",
	"%template(X X<int>",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range seedInputs {
		f.Add([]byte(s))
	}
}

func clampInput(src []byte) []byte {
	if len(src) > maxFuzzInput {
		src = src[:maxFuzzInput]
	}
	return append([]byte(nil), src...)
}
