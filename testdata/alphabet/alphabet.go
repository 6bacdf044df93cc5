// Package alphabet exercises upcast generation over a three-level tree. The
// types carry a breadcrumb of the hops a value took, which makes composed
// conversions observable.
package alphabet

type (
	A struct{ Trail string }
	B struct{ Trail string }
	C struct{ Trail string }
	D struct{ Trail string }
	E struct{ Trail string }
	F struct{ Trail string }
	G struct{ Trail string }
	H struct{ Trail string }
	I struct{ Trail string }
	J struct{ Trail string }
	K struct{ Trail string }
	L struct{ Trail string }
)

func AFromB(in B) A { return A{Trail: in.Trail + ">A"} }
func AFromC(in C) A { return A{Trail: in.Trail + ">A"} }
func AFromD(in D) A { return A{Trail: in.Trail + ">A"} }
func BFromE(in E) B { return B{Trail: in.Trail + ">B"} }
func BFromF(in F) B { return B{Trail: in.Trail + ">B"} }
func CFromG(in G) C { return C{Trail: in.Trail + ">C"} }
func DFromH(in H) D { return D{Trail: in.Trail + ">D"} }
func DFromI(in I) D { return D{Trail: in.Trail + ">D"} }
func FFromJ(in J) F { return F{Trail: in.Trail + ">F"} }
func FFromK(in K) F { return F{Trail: in.Trail + ">F"} }
func IFromL(in L) I { return I{Trail: in.Trail + ">I"} }
