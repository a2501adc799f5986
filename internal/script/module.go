package script

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pvec/internal/engine/vector"
)

// ModuleName is the name scripts require the vector module by.
const ModuleName = "vector"

// vectorTypeName keys the userdata metatable in the registry.
const vectorTypeName = "pvec.vector"

// Vector is the element type scripts store in vectors.
type Vector = vector.Vector[lua.LValue]

var moduleFuncs = map[string]lua.LGFunction{
	"new":  vecNew,
	"of":   vecOf,
	"from": vecFrom,
	"is":   vecIs,
}

// Methods take positions 1-based, as Lua tables do. Editing methods on a
// persistent vector return a new vector; on a linear one they return the
// receiver.
var vectorMethods = map[string]lua.LGFunction{
	"len":      vecLen,
	"get":      vecGet,
	"set":      vecSet,
	"push":     vecPush,
	"unshift":  vecUnshift,
	"pop":      vecPop,
	"shift":    vecShift,
	"first":    vecFirst,
	"last":     vecLast,
	"slice":    vecSlice,
	"concat":   vecConcat,
	"linear":   vecLinear,
	"forked":   vecForked,
	"islinear": vecIsLinear,
	"totable":  vecToTable,
	"ipairs":   vecIpairs,
	"reverse":  vecReverse,
}

// OpenVector is the loader of the vector module.
func OpenVector(L *lua.LState) int {
	mt := L.NewTypeMetatable(vectorTypeName)
	methods := L.SetFuncs(L.NewTable(), vectorMethods)
	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		return vecIndex(L, methods)
	}))
	L.SetField(mt, "__len", L.NewFunction(vecLen))
	L.SetField(mt, "__concat", L.NewFunction(vecConcat))
	L.SetField(mt, "__eq", L.NewFunction(vecEq))
	L.SetField(mt, "__tostring", L.NewFunction(vecToString))

	mod := L.SetFuncs(L.NewTable(), moduleFuncs)
	L.Push(mod)
	return 1
}

// Push wraps v as a userdata and pushes it. The vector module must have been
// loaded.
func Push(L *lua.LState, v *Vector) {
	ud := L.NewUserData()
	ud.Value = v
	L.SetMetatable(ud, L.GetTypeMetatable(vectorTypeName))
	L.Push(ud)
}

// ToVector returns the vector held by lv, if any.
func ToVector(lv lua.LValue) (*Vector, bool) {
	ud, ok := lv.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	v, ok := ud.Value.(*Vector)
	return v, ok
}

func checkVector(L *lua.LState, n int) *Vector {
	v, ok := ToVector(L.Get(n))
	if !ok {
		L.ArgError(n, "vector expected")
		return nil
	}
	return v
}

// pushResult pushes the vector returned by an edit: the receiver's userdata
// when the edit happened in place, a new userdata otherwise.
func pushResult(L *lua.LState, recv, result *Vector) {
	if result == recv {
		L.Push(L.Get(1))
		return
	}
	Push(L, result)
}

// raise converts a vector error into a Lua error.
func raise(L *lua.LState, err error) {
	switch {
	case errors.Is(err, vector.ErrOutOfBounds), errors.Is(err, vector.ErrEmpty):
		L.RaiseError("%s", err.Error())
	default:
		L.RaiseError("vector: %s", err.Error())
	}
}

// checkPos reads a 1-based position argument and returns the 0-based index.
func checkPos(L *lua.LState, n int) int {
	return L.CheckInt(n) - 1
}

func vecNew(L *lua.LState) int {
	Push(L, vector.New[lua.LValue]())
	return 1
}

func vecOf(L *lua.LState) int {
	v := vector.New[lua.LValue]().Linear()
	for i := 1; i <= L.GetTop(); i++ {
		v.AddLast(L.Get(i))
	}
	Push(L, v.Forked())
	return 1
}

func vecFrom(L *lua.LState) int {
	t := L.CheckTable(1)
	v := vector.New[lua.LValue]().Linear()
	for i := 1; i <= t.Len(); i++ {
		v.AddLast(t.RawGetInt(i))
	}
	Push(L, v.Forked())
	return 1
}

func vecIs(L *lua.LState) int {
	_, ok := ToVector(L.Get(1))
	L.Push(lua.LBool(ok))
	return 1
}

// vecIndex resolves v.name to a method and v[i] to an element. Out of range
// positions yield nil, as with tables.
func vecIndex(L *lua.LState, methods *lua.LTable) int {
	v := checkVector(L, 1)
	switch key := L.Get(2).(type) {
	case lua.LString:
		L.Push(methods.RawGetString(string(key)))
	case lua.LNumber:
		x, err := v.Get(int(key) - 1)
		if err != nil {
			L.Push(lua.LNil)
		} else {
			L.Push(x)
		}
	default:
		L.Push(lua.LNil)
	}
	return 1
}

func vecLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkVector(L, 1).Len()))
	return 1
}

func vecGet(L *lua.LState) int {
	v := checkVector(L, 1)
	x, err := v.Get(checkPos(L, 2))
	if err != nil {
		raise(L, err)
		return 0
	}
	L.Push(x)
	return 1
}

func vecSet(L *lua.LState) int {
	v := checkVector(L, 1)
	w, err := v.Set(checkPos(L, 2), L.CheckAny(3))
	if err != nil {
		raise(L, err)
		return 0
	}
	pushResult(L, v, w)
	return 1
}

func vecPush(L *lua.LState) int {
	v := checkVector(L, 1)
	w := v
	for i := 2; i <= L.GetTop(); i++ {
		w = w.AddLast(L.Get(i))
	}
	pushResult(L, v, w)
	return 1
}

func vecUnshift(L *lua.LState) int {
	v := checkVector(L, 1)
	w := v
	for i := L.GetTop(); i >= 2; i-- {
		w = w.AddFirst(L.Get(i))
	}
	pushResult(L, v, w)
	return 1
}

// vecPop returns the shortened vector and the removed element.
func vecPop(L *lua.LState) int {
	v := checkVector(L, 1)
	x, err := v.Last()
	if err != nil {
		raise(L, err)
		return 0
	}
	w, err := v.RemoveLast()
	if err != nil {
		raise(L, err)
		return 0
	}
	pushResult(L, v, w)
	L.Push(x)
	return 2
}

// vecShift returns the shortened vector and the removed element.
func vecShift(L *lua.LState) int {
	v := checkVector(L, 1)
	x, err := v.First()
	if err != nil {
		raise(L, err)
		return 0
	}
	w, err := v.RemoveFirst()
	if err != nil {
		raise(L, err)
		return 0
	}
	pushResult(L, v, w)
	L.Push(x)
	return 2
}

func vecFirst(L *lua.LState) int {
	x, err := checkVector(L, 1).First()
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(x)
	return 1
}

func vecLast(L *lua.LState) int {
	x, err := checkVector(L, 1).Last()
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(x)
	return 1
}

// vecSlice returns positions i through j inclusive, like string.sub.
// j defaults to the length.
func vecSlice(L *lua.LState) int {
	v := checkVector(L, 1)
	start := checkPos(L, 2)
	end := L.OptInt(3, v.Len())
	w, err := v.Slice(start, end)
	if err != nil {
		raise(L, err)
		return 0
	}
	pushResult(L, v, w)
	return 1
}

func vecConcat(L *lua.LState) int {
	v := checkVector(L, 1)
	other := checkVector(L, 2)
	pushResult(L, v, v.Concat(other))
	return 1
}

func vecLinear(L *lua.LState) int {
	v := checkVector(L, 1)
	pushResult(L, v, v.Linear())
	return 1
}

func vecForked(L *lua.LState) int {
	v := checkVector(L, 1)
	pushResult(L, v, v.Forked())
	return 1
}

func vecIsLinear(L *lua.LState) int {
	L.Push(lua.LBool(checkVector(L, 1).IsLinear()))
	return 1
}

func vecReverse(L *lua.LState) int {
	v := checkVector(L, 1)
	pushResult(L, v, v.Reverse())
	return 1
}

func vecToTable(L *lua.LState) int {
	v := checkVector(L, 1)
	t := L.CreateTable(v.Len(), 0)
	for x := range v.Values() {
		t.Append(x)
	}
	L.Push(t)
	return 1
}

// vecIpairs returns a generic-for iterator over position/element pairs.
func vecIpairs(L *lua.LState) int {
	it := checkVector(L, 1).Iter()
	L.Push(L.NewFunction(func(L *lua.LState) int {
		if !it.Next() {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(it.Index() + 1))
		L.Push(it.Value())
		return 2
	}))
	return 1
}

func vecEq(L *lua.LState) int {
	a, b := checkVector(L, 1), checkVector(L, 2)
	L.Push(lua.LBool(vector.EqualFunc(a, b, func(x, y lua.LValue) bool {
		return x == y
	})))
	return 1
}

func vecToString(L *lua.LState) int {
	L.Push(lua.LString(checkVector(L, 1).String()))
	return 1
}
