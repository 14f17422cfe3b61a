// This file is part of GopherMSX.
//
// GopherMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherMSX.  If not, see <https://www.gnu.org/licenses/>.

package environment_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/logger"
	"github.com/jetsetilly/gophermsx/notifications"
	"github.com/jetsetilly/gophermsx/test"
)

func TestEnvironment(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, env.IsMainEmulation())
	test.ExpectSuccess(t, env.AllowLogging())

	// notifying without a sink is not an error
	test.ExpectSuccess(t, env.Notify(notifications.Simple(notifications.NotifyReset)))

	var got []notifications.Event
	aux, err := environment.NewEnvironment("thumbnail", env.Prefs, notifications.Func(func(ev notifications.Event) error {
		got = append(got, ev)
		return nil
	}))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, aux.AllowLogging())
	test.ExpectSuccess(t, aux.IsEmulation("thumbnail"))
	test.ExpectSuccess(t, aux.Prefs == env.Prefs)

	test.ExpectSuccess(t, aux.Notify(notifications.FinishFrame{}))
	test.ExpectEquality(t, len(got), 1)

	aux.Normalise()
	test.ExpectSuccess(t, aux.Random.ZeroSeed)
	test.ExpectFailure(t, aux.Prefs.Throttle.Get().(bool))
}

func TestLoggingPermission(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)
	aux, err := environment.NewEnvironment("comparison", env.Prefs, nil)
	test.DemandSuccess(t, err)

	log := logger.NewLogger(10)
	log.Log(env, "main", "logged")
	log.Log(aux, "aux", "not logged")

	w := &strings.Builder{}
	log.Write(w)
	test.ExpectEquality(t, w.String(), "main: logged\n")
}
