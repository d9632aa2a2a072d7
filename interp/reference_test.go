package interp

// Node positions and weights of the default scale and momentum-fraction
// interpolations, computed independently with the same algorithm.

var q2NodeReference = []float64{
	9.9999999999999986e1, 1.2242682307575689e2, 1.5071735829758390e2, 1.8660624792652183e2,
	2.3239844323901826e2, 2.9117504454783159e2, 3.6707996194452909e2, 4.6572167648697109e2,
	5.9473999989302229e2, 7.6461095796663312e2, 9.8979770734783131e2, 1.2904078604330668e3,
	1.6945973073289490e3, 2.2420826491130997e3, 2.9893125907295248e3, 4.0171412997902630e3,
	5.4423054291935287e3, 7.4347313816879214e3, 1.0243854670019169e4, 1.4238990475802799e4,
	1.9971806922234402e4, 2.8273883344269376e4, 4.0410482328443621e4, 5.8325253189217328e4,
	8.5033475340946548e4, 1.2526040013230646e5, 1.8648821332147921e5, 2.8069149021747953e5,
	4.2724538080621109e5, 6.5785374312992941e5, 1.0249965523865514e6, 1.6165812577807596e6,
	2.5816634211063879e6, 4.1761634755570055e6, 6.8451673415389210e6, 1.1373037585359517e7,
	1.9160909972020049e7, 3.2746801715531096e7, 5.6794352823474184e7, 9.9999999999999493e7,
}

var xNodeReference = []float64{
	1.0000000000000000e0, 9.3094408087175440e-1, 8.6278393239061080e-1, 7.9562425229227562e-1,
	7.2958684424143116e-1, 6.6481394824738227e-1, 6.0147219796733498e-1, 5.3975723378804452e-1,
	4.7989890296102550e-1, 4.2216677535896480e-1, 3.6687531864822420e-1, 3.1438740076927585e-1,
	2.6511370415828228e-1, 2.1950412650038861e-1, 1.7802566042569432e-1, 1.4112080644440345e-1,
	1.0914375746330703e-1, 8.2281221262048926e-2, 6.0480028754447364e-2, 4.3414917417022691e-2,
	3.0521584007828916e-2, 2.1089186683787169e-2, 1.4375068581090129e-2, 9.6991595740433985e-3,
	6.4962061946337987e-3, 4.3285006388208112e-3, 2.8738675812817515e-3, 1.9034634022867384e-3,
	1.2586797144272762e-3, 8.3140688364881441e-4, 5.4877953236707956e-4, 3.6205449638139736e-4,
	2.3878782918561914e-4, 1.5745605600841445e-4, 1.0381172986576898e-4, 6.8437449189678965e-5,
	4.5114383949640441e-5, 2.9738495372244901e-5, 1.9602505002391748e-5, 1.2921015690747310e-5,
	8.5168066775733548e-6, 5.6137577169301513e-6, 3.7002272069854957e-6, 2.4389432928916821e-6,
	1.6075854984708080e-6, 1.0596094959101024e-6, 6.9842085307003639e-7, 4.6035014748963906e-7,
	3.0343047658679519e-7, 1.9999999999999954e-7,
}

// twoPointReference is the content of a [40, 50, 50] array after
// interpolating the points (1e5, 0.25, 0.5) and (1e3, 0.5, 0.5) with weight 1.
var twoPointReference = []struct {
	index []int
	value float64
}{
	{[]int{9, 6, 6}, -4.0913584971505212e-6},
	{[]int{9, 6, 7}, 3.0858594463668783e-5},
	{[]int{9, 6, 8}, 6.0021251939206686e-5},
	{[]int{9, 6, 9}, -5.0714506160633226e-6},
	{[]int{9, 7, 6}, 3.0858594463668783e-5},
	{[]int{9, 7, 7}, -2.3274735101712016e-4},
	{[]int{9, 7, 8}, -4.5270329502624643e-4},
	{[]int{9, 7, 9}, 3.8250825004119329e-5},
	{[]int{9, 8, 6}, 6.0021251939206680e-5},
	{[]int{9, 8, 7}, -4.5270329502624637e-4},
	{[]int{9, 8, 8}, -8.8052677047459023e-4},
	{[]int{9, 8, 9}, 7.4399448333843429e-5},
	{[]int{9, 9, 6}, -5.0714506160633217e-6},
	{[]int{9, 9, 7}, 3.8250825004119329e-5},
	{[]int{9, 9, 8}, 7.4399448333843443e-5},
	{[]int{9, 9, 9}, -6.2863255246593026e-6},
	{[]int{10, 6, 6}, 3.2560454032038003e-4},
	{[]int{10, 6, 7}, -2.4558342839606324e-3},
	{[]int{10, 6, 8}, -4.7767000033681270e-3},
	{[]int{10, 6, 9}, 4.0360368023258439e-4},
	{[]int{10, 7, 6}, -2.4558342839606324e-3},
	{[]int{10, 7, 7}, 1.8522843767295388e-2},
	{[]int{10, 7, 8}, 3.6027702872090658e-2},
	{[]int{10, 7, 9}, -3.0441337030269453e-3},
	{[]int{10, 8, 6}, -4.7767000033681270e-3},
	{[]int{10, 8, 7}, 3.6027702872090658e-2},
	{[]int{10, 8, 8}, 7.0075383161814372e-2},
	{[]int{10, 8, 9}, -5.9209668846429931e-3},
	{[]int{10, 9, 6}, 4.0360368023258439e-4},
	{[]int{10, 9, 7}, -3.0441337030269453e-3},
	{[]int{10, 9, 8}, -5.9209668846429931e-3},
	{[]int{10, 9, 9}, 5.0028765120106755e-4},
	{[]int{11, 6, 6}, 1.3274904136884986e-5},
	{[]int{11, 6, 7}, -1.0012441676511976e-4},
	{[]int{11, 6, 8}, -1.9474616224017421e-4},
	{[]int{11, 6, 9}, 1.6454930754680843e-5},
	{[]int{11, 7, 6}, -1.0012441676511976e-4},
	{[]int{11, 7, 7}, 7.5517674019963063e-4},
	{[]int{11, 7, 8}, 1.4688502237364042e-3},
	{[]int{11, 7, 9}, -1.2410939677862364e-4},
	{[]int{11, 8, 6}, -1.9474616224017418e-4},
	{[]int{11, 8, 7}, 1.4688502237364042e-3},
	{[]int{11, 8, 8}, 2.8569748840518382e-3},
	{[]int{11, 8, 9}, -2.4139794768822075e-4},
	{[]int{11, 9, 6}, 1.6454930754680843e-5},
	{[]int{11, 9, 7}, -1.2410939677862364e-4},
	{[]int{11, 9, 8}, -2.4139794768822075e-4},
	{[]int{11, 9, 9}, 2.0396738337944602e-5},
	{[]int{12, 6, 6}, -2.1682835394615433e-6},
	{[]int{12, 6, 7}, 1.6354025801721504e-5},
	{[]int{12, 6, 8}, 3.1809261566371142e-5},
	{[]int{12, 6, 9}, -2.6876996722875166e-6},
	{[]int{12, 7, 6}, 1.6354025801721504e-5},
	{[]int{12, 7, 7}, -1.2334833293517984e-4},
	{[]int{12, 7, 8}, -2.3991764680339134e-4},
	{[]int{12, 7, 9}, 2.0271661426154572e-5},
	{[]int{12, 8, 6}, 3.1809261566371142e-5},
	{[]int{12, 8, 7}, -2.3991764680339134e-4},
	{[]int{12, 8, 8}, -4.6664981907720756e-4},
	{[]int{12, 8, 9}, 3.9429226082154630e-5},
	{[]int{12, 9, 6}, -2.6876996722875166e-6},
	{[]int{12, 9, 7}, 2.0271661426154572e-5},
	{[]int{12, 9, 8}, 3.9429226082154623e-5},
	{[]int{12, 9, 9}, -3.3315428526512343e-6},
	{[]int{23, 11, 6}, -2.4353100307613186e-4},
	{[]int{23, 11, 7}, 1.8368041980410083e-3},
	{[]int{23, 11, 8}, 3.5726606946862392e-3},
	{[]int{23, 11, 9}, -3.0186928289005667e-4},
	{[]int{23, 12, 6}, 2.9987494527093064e-3},
	{[]int{23, 12, 7}, -2.2617718130482554e-2},
	{[]int{23, 12, 8}, -4.3992404119311192e-2},
	{[]int{23, 12, 9}, 3.7171051546702580e-3},
	{[]int{23, 13, 6}, 1.4248943085993610e-3},
	{[]int{23, 13, 7}, -1.0747099197804599e-2},
	{[]int{23, 13, 8}, -2.0903555712057060e-2},
	{[]int{23, 13, 9}, 1.7662302446007081e-3},
	{[]int{23, 14, 6}, -1.9189233197773798e-4},
	{[]int{23, 14, 7}, 1.4473255417027965e-3},
	{[]int{23, 14, 8}, 2.8151084806817320e-3},
	{[]int{23, 14, 9}, -2.3786047737056168e-4},
	{[]int{24, 11, 6}, 2.4624842908465045e-3},
	{[]int{24, 11, 7}, -1.8573000668924675e-2},
	{[]int{24, 11, 8}, -3.6125260135520983e-2},
	{[]int{24, 11, 9}, 3.0523767307502974e-3},
	{[]int{24, 12, 6}, -3.0322108175987520e-2},
	{[]int{24, 12, 7}, 2.2870096573985707e-1},
	{[]int{24, 12, 8}, 4.4483290707142076e-1},
	{[]int{24, 12, 9}, -3.7585822483302452e-2},
	{[]int{24, 13, 6}, -1.4407939057950724e-2},
	{[]int{24, 13, 7}, 1.0867020055959625e-1},
	{[]int{24, 13, 8}, 2.1136806777609088e-1},
	{[]int{24, 13, 9}, -1.7859386182495846e-2},
	{[]int{24, 14, 6}, 1.9403355098954720e-3},
	{[]int{24, 14, 7}, -1.4634754364600849e-2},
	{[]int{24, 14, 8}, -2.8465206988616668e-2},
	{[]int{24, 14, 9}, 2.4051462916002946e-3},
	{[]int{25, 11, 6}, 1.7967411488022474e-3},
	{[]int{25, 11, 7}, -1.3551710637356816e-2},
	{[]int{25, 11, 8}, -2.6358641814670535e-2},
	{[]int{25, 11, 9}, 2.2271536489275397e-3},
	{[]int{25, 12, 6}, -2.2124396764984615e-2},
	{[]int{25, 12, 7}, 1.6687068317270662e-1},
	{[]int{25, 12, 8}, 3.2457043135158342e-1},
	{[]int{25, 12, 9}, -2.7424334895599013e-2},
	{[]int{25, 13, 6}, -1.0512691216379747e-2},
	{[]int{25, 13, 7}, 7.9290747851593249e-2},
	{[]int{25, 13, 8}, 1.5422380817933001e-1},
	{[]int{25, 13, 9}, -1.3031024874237778e-2},
	{[]int{25, 14, 6}, 1.4157575201882570e-3},
	{[]int{25, 14, 7}, -1.0678186036448784e-2},
	{[]int{25, 14, 8}, -2.0769516741988788e-2},
	{[]int{25, 14, 9}, 1.7549047224670190e-3},
	{[]int{26, 11, 6}, -2.1941078639412583e-4},
	{[]int{26, 11, 7}, 1.6548802758317395e-3},
	{[]int{26, 11, 8}, 3.2188110862231270e-3},
	{[]int{26, 11, 9}, -2.7197102590848567e-4},
	{[]int{26, 12, 6}, 2.7017421490774826e-3},
	{[]int{26, 12, 7}, -2.0377575170166206e-2},
	{[]int{26, 12, 8}, -3.9635232727098596e-2},
	{[]int{26, 12, 9}, 3.3489492294371172e-3},
	{[]int{26, 13, 6}, 1.2837674744868705e-3},
	{[]int{26, 13, 7}, -9.6826665051300553e-3},
	{[]int{26, 13, 8}, -1.8833189775767707e-2},
	{[]int{26, 13, 9}, 1.5912962293338163e-3},
	{[]int{26, 14, 6}, -1.7288660142000884e-4},
	{[]int{26, 14, 7}, 1.3039770348009471e-3},
	{[]int{26, 14, 8}, 2.5362896622162690e-3},
	{[]int{26, 14, 9}, -2.1430189065349477e-4},
}
